package routes

import (
	"dvsubmit-backend/applications/controllers"
	"dvsubmit-backend/applications/repositories"
	auditservices "dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func ApplicationsRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	db *gorm.DB,
	applicationRepo repositories.ApplicationRepository,
	auditRecorder *auditservices.Recorder,
	hub *websocket.Hub,
	asynqClient *asynq.Client,
	searchRepo bleverepositories.BleveRepositoryInterface,
) {
	applicationController := &controllers.ApplicationController{
		DB:              db,
		ApplicationRepo: applicationRepo,
		UserRepo:        appCtx.UserRepo,
		AuditRecorder:   auditRecorder,
		Hub:             hub,
		AsynqClient:     asynqClient,
		SearchRepo:      searchRepo,
	}

	// Applicant wizard surface.
	mine := app.Group("/api/v1/applications/me",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireActiveUser(appCtx),
	)
	mine.Get("/", applicationController.GetMyApplicationController)
	mine.Put("/draft", applicationController.SaveDraftController)
	mine.Post("/submit", applicationController.SubmitApplicationController)

	// Admin back office.
	admin := app.Group("/api/v1/applications",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	admin.Get("/", applicationController.GetFilteredApplicationsController)
	admin.Get("/export", applicationController.ExportApplicationsController)
	admin.Get("/:id", applicationController.GetApplicationByIdController)
	admin.Post("/:id/reject", applicationController.RejectApplicationController)
}
