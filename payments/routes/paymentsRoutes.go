package routes

import (
	auditservices "dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/payments/controllers"
	"dvsubmit-backend/payments/repositories"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func PaymentsRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	db *gorm.DB,
	paymentRepo repositories.PaymentRepository,
	auditRecorder *auditservices.Recorder,
	hub *websocket.Hub,
	asynqClient *asynq.Client,
	searchRepo bleverepositories.BleveRepositoryInterface,
) {
	paymentController := &controllers.PaymentController{
		DB:            db,
		PaymentRepo:   paymentRepo,
		AuditRecorder: auditRecorder,
		Hub:           hub,
		AsynqClient:   asynqClient,
		SearchRepo:    searchRepo,
	}

	// Applicant side: attach the bank transfer reference.
	mine := app.Group("/api/v1/payments/me",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireActiveUser(appCtx),
	)
	mine.Post("/reference", paymentController.SubmitPaymentReferenceController)

	// Admin side: verify against the bank statement.
	admin := app.Group("/api/v1/payments",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	admin.Post("/:id/verify", paymentController.VerifyPaymentController)
}
