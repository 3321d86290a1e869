package repositories

import (
	"dvsubmit-backend/db/models"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	GetFilteredAuditLogs(pageSize int, offset int, filters map[string]string) ([]models.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) GetFilteredAuditLogs(pageSize int, offset int, filters map[string]string) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := r.db.Model(&models.AuditLog{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "action":
			db = db.Where("action = ?", value)
		case "actor_id":
			db = db.Where("actor_id = ?", value)
		case "application_id":
			db = db.Where("application_id = ?", value)
		case "start_date":
			db = db.Where("created_at >= ?", value)
		case "end_date":
			db = db.Where("created_at <= ?", value+" 23:59:59")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&logs).Error

	return logs, total, err
}
