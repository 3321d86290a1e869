package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded by state-changing endpoints.
const (
	AuditApplicationSubmitted   = "APPLICATION_SUBMITTED"
	AuditApplicationResubmitted = "APPLICATION_RESUBMITTED"
	AuditApplicationRejected    = "APPLICATION_REJECTED"
	AuditPaymentReferenceAdded  = "PAYMENT_REFERENCE_ADDED"
	AuditPaymentVerified        = "PAYMENT_VERIFIED"
	AuditPaymentRejected        = "PAYMENT_REJECTED"
	AuditSubmissionRelayed      = "SUBMISSION_RELAYED"
	AuditSubmissionStatusSet    = "SUBMISSION_STATUS_SET"
	AuditUserBlocked            = "USER_BLOCKED"
	AuditUserUnblocked          = "USER_UNBLOCKED"
	AuditUserRoleChanged        = "USER_ROLE_CHANGED"
	AuditUserLoggedIn           = "USER_LOGGED_IN"
	AuditPhotoUploaded          = "PHOTO_UPLOADED"
	AuditPhotoDeleted           = "PHOTO_DELETED"
)

// AuditLog is append-only. Nothing in the application updates or deletes
// rows in this table.
type AuditLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	ActorID       *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id"` // nil for system actions
	ApplicationID *uuid.UUID     `gorm:"type:uuid;index" json:"application_id"`
	Action        string         `gorm:"type:varchar(50);not null;index" json:"action"`
	Details       datatypes.JSON `json:"details"`
	IPAddress     string         `json:"ip_address"`
	UserAgent     string         `json:"user_agent"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
