package repositories

import (
	"errors"
	"fmt"
	"strings"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	FindOrCreateDraft(userID uuid.UUID) (*models.Application, error)
	GetApplicationByID(id string) (*models.Application, error)
	GetApplicationByUserID(userID uuid.UUID) (*models.Application, error)
	SaveDraftFields(userID uuid.UUID, req *requests.ApplicationFieldsRequest) (*models.Application, error)
	ProcessApplicationSubmission(tx *gorm.DB, userID uuid.UUID, req *requests.ApplicationFieldsRequest) (*models.Application, models.ApplicationStatus, error)
	ProcessApplicationRejection(tx *gorm.DB, applicationID string, note string, adminID uuid.UUID) (*models.Application, models.ApplicationStatus, error)
	GetFilteredApplications(pageSize int, offset int, filters map[string]string) ([]models.Application, int64, error)
	GetApplicationsForExport(filters map[string]string) ([]models.Application, error)
}

type applicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{DB: db}
}

// FindOrCreateDraft returns the caller's application, creating a fresh DRAFT
// when none exists. The unique index on user_id keeps this to one row per
// user even if two requests race.
func (r *applicationRepository) FindOrCreateDraft(userID uuid.UUID) (*models.Application, error) {
	var application models.Application

	err := r.DB.Preload("Children").Where("user_id = ?", userID).First(&application).Error
	if err == nil {
		return &application, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}

	application = models.Application{
		UserID: userID,
		Status: models.DraftApplication,
	}
	if err := r.DB.Create(&application).Error; err != nil {
		return nil, fmt.Errorf("failed to create draft application: %w", err)
	}
	return &application, nil
}

func (r *applicationRepository) GetApplicationByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.DB.Preload("Children").Preload("User").Where("id = ?", id).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) GetApplicationByUserID(userID uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.DB.Preload("Children").Where("user_id = ?", userID).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// applyFields copies the wizard payload onto the row. Children are replaced
// wholesale; the wizard always sends the full set.
func applyFields(tx *gorm.DB, application *models.Application, req *requests.ApplicationFieldsRequest) error {
	application.FirstName = req.FirstName
	application.LastName = req.LastName
	application.Gender = req.Gender
	application.DateOfBirth = req.DateOfBirth
	application.BirthCity = req.BirthCity
	application.BirthCountry = req.BirthCountry
	application.CountryOfEligibility = req.CountryOfEligibility
	application.PassportNumber = req.PassportNumber
	application.PhotoPath = req.PhotoPath

	application.AddressLine = req.AddressLine
	application.City = req.City
	application.Region = req.Region
	application.PostalCode = req.PostalCode
	application.Country = req.Country
	application.PhoneNumber = req.PhoneNumber
	application.Email = strings.TrimSpace(strings.ToLower(req.Email))

	application.EducationLevel = req.EducationLevel
	application.MaritalStatus = req.MaritalStatus
	application.SpouseFirstName = req.SpouseFirstName
	application.SpouseLastName = req.SpouseLastName
	application.SpouseDateOfBirth = req.SpouseDateOfBirth
	application.SpouseBirthCity = req.SpouseBirthCity
	application.SpouseBirthCountry = req.SpouseBirthCountry
	application.SpousePhotoPath = req.SpousePhotoPath

	if err := tx.Save(application).Error; err != nil {
		return fmt.Errorf("failed to save application fields: %w", err)
	}

	if err := tx.Where("application_id = ?", application.ID).Delete(&models.Child{}).Error; err != nil {
		return fmt.Errorf("failed to clear existing children: %w", err)
	}

	for _, childReq := range req.Children {
		child := models.Child{
			ApplicationID: application.ID,
			FirstName:     childReq.FirstName,
			LastName:      childReq.LastName,
			Gender:        childReq.Gender,
			DateOfBirth:   childReq.DateOfBirth,
			BirthCity:     childReq.BirthCity,
			BirthCountry:  childReq.BirthCountry,
			PhotoPath:     childReq.PhotoPath,
		}
		if err := tx.Create(&child).Error; err != nil {
			return fmt.Errorf("failed to create child record: %w", err)
		}
	}

	return nil
}

// SaveDraftFields persists wizard progress without moving the application
// out of DRAFT. Partial payloads are fine here; completeness is only
// enforced at submission.
func (r *applicationRepository) SaveDraftFields(userID uuid.UUID, req *requests.ApplicationFieldsRequest) (*models.Application, error) {
	application, err := r.FindOrCreateDraft(userID)
	if err != nil {
		return nil, err
	}

	if application.Status != models.DraftApplication {
		return nil, services.NewServiceError(services.CodeInvalidStatus,
			"only DRAFT applications can be edited through the wizard")
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		return applyFields(tx, application, req)
	})
	if err != nil {
		return nil, err
	}

	return r.GetApplicationByUserID(userID)
}

func (r *applicationRepository) GetFilteredApplications(pageSize int, offset int, filters map[string]string) ([]models.Application, int64, error) {
	var applications []models.Application
	var total int64

	db := r.applyApplicationFilters(filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Children").Preload("User").
		Order("updated_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&applications).Error

	return applications, total, err
}

// GetApplicationsForExport returns the full filtered set, unpaginated, for
// the xlsx export.
func (r *applicationRepository) GetApplicationsForExport(filters map[string]string) ([]models.Application, error) {
	var applications []models.Application
	err := r.applyApplicationFilters(filters).
		Preload("Children").
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) applyApplicationFilters(filters map[string]string) *gorm.DB {
	db := r.DB.Model(&models.Application{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToUpper(value))
		case "payment_status":
			db = db.Where("payment_status = ?", strings.ToUpper(value))
		case "country_of_eligibility":
			db = db.Where("country_of_eligibility = ?", value)
		case "email":
			db = db.Where("email ILIKE ?", "%"+value+"%")
		case "name":
			pattern := "%" + value + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
		case "start_date":
			db = db.Where("created_at >= ?", value)
		case "end_date":
			db = db.Where("created_at <= ?", value+" 23:59:59")
		}
	}

	return db
}
