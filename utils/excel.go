package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dvsubmit-backend/db/models"

	"github.com/xuri/excelize/v2"
)

var applicationExportHeaders = []string{
	"Last Name", "First Name", "Email", "Phone", "Country of Eligibility",
	"Status", "Payment Status", "Payment Reference", "Confirmation Number",
	"Children", "Created At", "Submitted At",
}

// GenerateApplicationsExcel writes the given applications into an xlsx file
// under ./public/files and returns its public path.
func GenerateApplicationsExcel(applications []models.Application) (string, error) {
	dirPath := "./public/files"
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	for col, header := range applicationExportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("error resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %w", header, err)
		}
	}

	for row, app := range applications {
		values := []interface{}{
			app.LastName,
			app.FirstName,
			app.Email,
			app.PhoneNumber,
			app.CountryOfEligibility,
			string(app.Status),
			string(app.PaymentStatus),
			derefString(app.PaymentReference),
			derefString(app.ConfirmationNumber),
			len(app.Children),
			app.CreatedAt.Format("2006-01-02 15:04"),
			formatTimePtr(app.SubmittedAt),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", fmt.Errorf("error resolving cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("error writing row %d: %w", row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("dv_applications_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	if err := f.SaveAs(filepath.Join(dirPath, fileName)); err != nil {
		return "", fmt.Errorf("error saving excel file: %w", err)
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
