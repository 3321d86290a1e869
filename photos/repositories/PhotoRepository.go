package repositories

import (
	appservices "dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/photos/services"

	"gorm.io/gorm"
)

type PhotoRepository interface {
	SetPhotoPath(application *models.Application, slot string, key *string) error
}

type photoRepository struct {
	DB *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{DB: db}
}

// SetPhotoPath records (or clears) the stored key for one photo slot.
// Child slots must name a child row belonging to the application.
func (r *photoRepository) SetPhotoPath(application *models.Application, slot string, key *string) error {
	switch slot {
	case services.SlotApplicant:
		return r.DB.Model(application).Update("photo_path", key).Error
	case services.SlotSpouse:
		return r.DB.Model(application).Update("spouse_photo_path", key).Error
	}

	childID := services.ChildID(slot)
	if childID == "" {
		return appservices.NewServiceError(appservices.CodeInvalidRequest, "unknown photo slot")
	}

	var child models.Child
	err := r.DB.Where("id = ? AND application_id = ?", childID, application.ID).First(&child).Error
	if err != nil {
		return appservices.NewServiceError(appservices.CodeNotFound, "child not found on this application")
	}

	return r.DB.Model(&child).Update("photo_path", key).Error
}
