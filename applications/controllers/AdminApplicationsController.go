package controllers

import (
	"path/filepath"

	"dvsubmit-backend/config"
	"dvsubmit-backend/utils"
	"dvsubmit-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetApplicationByIdController returns a single application with its
// children for the admin review screen.
func (ac *ApplicationController) GetApplicationByIdController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid application id",
		})
	}

	application, err := ac.ApplicationRepo.GetApplicationByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "Application not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    application,
	})
}

// GetFilteredApplicationsController lists applications for the back office,
// filterable by status, payment status, country, email, name and dates.
func (ac *ApplicationController) GetFilteredApplicationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	applications, total, err := ac.ApplicationRepo.GetFilteredApplications(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch applications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch applications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    pagination.NewPaginatedResponse(c, applications, total, params),
	})
}

// ExportApplicationsController writes the filtered set to an Excel workbook
// and returns the download path. Exports are cleaned up by the scheduler.
func (ac *ApplicationController) ExportApplicationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)

	applications, err := ac.ApplicationRepo.GetApplicationsForExport(params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch applications for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch applications",
		})
	}

	filePath, err := utils.GenerateApplicationsExcel(applications)
	if err != nil {
		config.Logger.Error("Failed to generate export workbook", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to generate export",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Export generated",
		"data": fiber.Map{
			"file":  "/public/files/" + filepath.Base(filePath),
			"count": len(applications),
		},
	})
}
