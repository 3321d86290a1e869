package routes

import (
	"dvsubmit-backend/audit/controllers"
	"dvsubmit-backend/audit/repositories"
	"dvsubmit-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func AuditRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	auditRepo repositories.AuditLogRepository,
) {
	auditController := &controllers.AuditLogController{
		AuditRepo: auditRepo,
	}

	auditRoutes := app.Group("/api/v1",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)

	auditRoutes.Get("/audit-logs", auditController.GetFilteredAuditLogsController)
}
