package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeEmailNotification = "email:notification"
	TypeAuditRetry        = "audit:retry"
)

// EmailNotificationPayload is a transactional email queued so SMTP latency
// never sits on a request path.
type EmailNotificationPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AuditRetryPayload is a dead-lettered audit entry whose synchronous write
// failed. The worker retries it until it lands.
type AuditRetryPayload struct {
	ActorID       *uuid.UUID             `json:"actor_id"`
	ApplicationID *uuid.UUID             `json:"application_id"`
	Action        string                 `json:"action"`
	Details       map[string]interface{} `json:"details"`
	IPAddress     string                 `json:"ip_address"`
	UserAgent     string                 `json:"user_agent"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

func NewEmailNotificationTask(payload EmailNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailNotification, data, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

func NewAuditRetryTask(payload AuditRetryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit retry payload: %w", err)
	}
	return asynq.NewTask(TypeAuditRetry, data, asynq.MaxRetry(10), asynq.Timeout(10*time.Second)), nil
}
