package services

import (
	"encoding/json"
	"time"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is one state-changing action to be recorded.
type Entry struct {
	ActorID       *uuid.UUID
	ApplicationID *uuid.UUID
	Action        string
	Details       map[string]interface{}
	IPAddress     string
	UserAgent     string
}

// Recorder appends audit entries. Writes are best-effort everywhere: a
// failed insert is logged and dead-lettered to the worker queue, and never
// aborts the primary transaction.
type Recorder struct {
	db          *gorm.DB
	asynqClient *asynq.Client
}

func NewRecorder(db *gorm.DB, asynqClient *asynq.Client) *Recorder {
	return &Recorder{db: db, asynqClient: asynqClient}
}

// Record writes one audit entry. It intentionally returns nothing; callers
// must not branch on audit success.
func (r *Recorder) Record(entry Entry) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		config.Logger.Error("Failed to marshal audit details",
			zap.String("action", entry.Action), zap.Error(err))
		details = []byte("{}")
	}

	row := models.AuditLog{
		ActorID:       entry.ActorID,
		ApplicationID: entry.ApplicationID,
		Action:        entry.Action,
		Details:       datatypes.JSON(details),
		IPAddress:     entry.IPAddress,
		UserAgent:     entry.UserAgent,
	}

	if err := r.db.Create(&row).Error; err == nil {
		return
	} else {
		config.Logger.Error("Audit log write failed, dead-lettering entry",
			zap.String("action", entry.Action), zap.Error(err))
	}

	r.deadLetter(entry)
}

func (r *Recorder) deadLetter(entry Entry) {
	if r.asynqClient == nil {
		return
	}

	task, err := tasks.NewAuditRetryTask(tasks.AuditRetryPayload{
		ActorID:       entry.ActorID,
		ApplicationID: entry.ApplicationID,
		Action:        entry.Action,
		Details:       entry.Details,
		IPAddress:     entry.IPAddress,
		UserAgent:     entry.UserAgent,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		config.Logger.Error("Failed to build audit retry task",
			zap.String("action", entry.Action), zap.Error(err))
		return
	}

	if _, err := r.asynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue audit retry task",
			zap.String("action", entry.Action), zap.Error(err))
	}
}
