package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Handlers processes queued tasks on the worker binary.
type Handlers struct {
	DB *gorm.DB
}

func NewHandlers(db *gorm.DB) *Handlers {
	return &Handlers{DB: db}
}

// Register wires all task types into the asynq mux.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeEmailNotification, h.HandleEmailNotification)
	mux.HandleFunc(TypeAuditRetry, h.HandleAuditRetry)
}

func (h *Handlers) HandleEmailNotification(ctx context.Context, t *asynq.Task) error {
	var payload EmailNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := utils.SendEmail(payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	config.Logger.Info("Notification email sent",
		zap.String("to", payload.To),
		zap.String("subject", payload.Subject),
	)
	return nil
}

func (h *Handlers) HandleAuditRetry(ctx context.Context, t *asynq.Task) error {
	var payload AuditRetryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal audit retry payload: %v: %w", err, asynq.SkipRetry)
	}

	details, err := json.Marshal(payload.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %v: %w", err, asynq.SkipRetry)
	}

	entry := models.AuditLog{
		ActorID:       payload.ActorID,
		ApplicationID: payload.ApplicationID,
		Action:        payload.Action,
		Details:       datatypes.JSON(details),
		IPAddress:     payload.IPAddress,
		UserAgent:     payload.UserAgent,
		CreatedAt:     payload.OccurredAt,
	}

	if err := h.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to replay audit entry: %w", err)
	}

	config.Logger.Info("Dead-lettered audit entry replayed", zap.String("action", payload.Action))
	return nil
}
