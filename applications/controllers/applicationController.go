package controllers

import (
	"errors"

	"dvsubmit-backend/applications/repositories"
	"dvsubmit-backend/applications/services"
	auditservices "dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/tasks"
	userrepositories "dvsubmit-backend/users/repositories"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationController serves the applicant wizard and the admin views
// over applications.
type ApplicationController struct {
	DB              *gorm.DB
	ApplicationRepo repositories.ApplicationRepository
	UserRepo        userrepositories.UserRepository
	AuditRecorder   *auditservices.Recorder
	Hub             *websocket.Hub
	AsynqClient     *asynq.Client
	SearchRepo      bleverepositories.BleveRepositoryInterface
}

// reindex keeps the search index in step with the database, best-effort.
func (ac *ApplicationController) reindex(application *models.Application) {
	if ac.SearchRepo == nil || application == nil {
		return
	}
	if err := ac.SearchRepo.UpdateApplication(*application); err != nil {
		config.Logger.Warn("Failed to reindex application",
			zap.String("application_id", application.ID.String()), zap.Error(err))
	}
}

// respondServiceError maps domain errors onto stable HTTP responses. Errors
// without a code fall through as 500s.
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

// auditEntryFor builds an audit entry carrying the request's network
// context alongside the actor and application.
func auditEntryFor(c *fiber.Ctx, actorID *uuid.UUID, application *models.Application, action string, details map[string]interface{}) auditservices.Entry {
	var appID *uuid.UUID
	if application != nil {
		appID = &application.ID
	}
	return auditservices.Entry{
		ActorID:       actorID,
		ApplicationID: appID,
		Action:        action,
		Details:       details,
		IPAddress:     c.IP(),
		UserAgent:     c.Get("User-Agent"),
	}
}

// enqueueEmail queues a notification for the worker. Failures are logged
// and swallowed, mail must never break the request.
func (ac *ApplicationController) enqueueEmail(to, subject, body string) {
	task, err := tasks.NewEmailNotificationTask(tasks.EmailNotificationPayload{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		config.Logger.Error("Failed to build email task", zap.Error(err))
		return
	}
	if _, err := ac.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue email task", zap.String("to", to), zap.Error(err))
	}
}
