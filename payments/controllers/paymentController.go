package controllers

import (
	"errors"

	"dvsubmit-backend/applications/services"
	auditservices "dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/payments/repositories"
	"dvsubmit-backend/tasks"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentController covers the manual bank-transfer workflow: applicants
// attach the transfer reference, admins verify it against the statement.
type PaymentController struct {
	DB            *gorm.DB
	PaymentRepo   repositories.PaymentRepository
	AuditRecorder *auditservices.Recorder
	Hub           *websocket.Hub
	AsynqClient   *asynq.Client
	SearchRepo    bleverepositories.BleveRepositoryInterface
}

func (pc *PaymentController) reindex(application *models.Application) {
	if pc.SearchRepo == nil || application == nil {
		return
	}
	if err := pc.SearchRepo.UpdateApplication(*application); err != nil {
		config.Logger.Warn("Failed to reindex application",
			zap.String("application_id", application.ID.String()), zap.Error(err))
	}
}

func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		return c.Status(svcErr.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"code":    svcErr.Code,
			"message": svcErr.Message,
		})
	}

	config.Logger.Error(fallback, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    services.CodeInternalError,
		"message": fallback,
	})
}

func (pc *PaymentController) recordAudit(c *fiber.Ctx, actorID *uuid.UUID, application *models.Application, action string, details map[string]interface{}) {
	var appID *uuid.UUID
	if application != nil {
		appID = &application.ID
	}
	pc.AuditRecorder.Record(auditservices.Entry{
		ActorID:       actorID,
		ApplicationID: appID,
		Action:        action,
		Details:       details,
		IPAddress:     c.IP(),
		UserAgent:     c.Get("User-Agent"),
	})
}

func (pc *PaymentController) enqueueEmail(to, subject, body string) {
	task, err := tasks.NewEmailNotificationTask(tasks.EmailNotificationPayload{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		config.Logger.Error("Failed to build email task", zap.Error(err))
		return
	}
	if _, err := pc.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue email task", zap.String("to", to), zap.Error(err))
	}
}
