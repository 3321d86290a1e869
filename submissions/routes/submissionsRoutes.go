package routes

import (
	auditservices "dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/submissions/controllers"
	"dvsubmit-backend/submissions/repositories"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func SubmissionsRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	db *gorm.DB,
	submissionRepo repositories.SubmissionRepository,
	auditRecorder *auditservices.Recorder,
	hub *websocket.Hub,
	asynqClient *asynq.Client,
	searchRepo bleverepositories.BleveRepositoryInterface,
) {
	submissionController := &controllers.SubmissionController{
		DB:             db,
		SubmissionRepo: submissionRepo,
		AuditRecorder:  auditRecorder,
		Hub:            hub,
		AsynqClient:    asynqClient,
		SearchRepo:     searchRepo,
	}

	admin := app.Group("/api/v1/submissions",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	admin.Get("/queue", submissionController.GetSubmissionQueueController)
	admin.Post("/:id/relay", submissionController.RelaySubmissionController)
	admin.Patch("/:id/status", submissionController.UpdateSubmissionStatusController)
}
