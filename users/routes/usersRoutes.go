package routes

import (
	"dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/users/controllers"
	userservices "dvsubmit-backend/users/services"

	"github.com/gofiber/fiber/v2"
)

func UsersRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	auditRecorder *services.Recorder,
	loginLimiter *middleware.LoginRateLimiter,
	searchRepo bleverepositories.BleveRepositoryInterface,
) {
	otpService := userservices.NewOtpService(appCtx.RedisClient, appCtx.UserRepo, appCtx.Ctx)

	authController := &controllers.AuthController{
		UserRepo:      appCtx.UserRepo,
		OtpService:    otpService,
		AuditRecorder: auditRecorder,
		AppCtx:        appCtx,
		SearchRepo:    searchRepo,
	}
	adminController := &controllers.AdminUsersController{
		UserRepo:      appCtx.UserRepo,
		AuditRecorder: auditRecorder,
	}

	auth := app.Group("/api/v1/auth")
	auth.Post("/register", authController.RegisterUser)
	auth.Post("/login", loginLimiter.Handler(), authController.LoginUser)
	auth.Post("/totp/validate", loginLimiter.Handler(), authController.ValidateTOTP)
	auth.Post("/logout", authController.LogoutUser)

	totp := app.Group("/api/v1/auth/totp",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	totp.Post("/setup", authController.SetupTOTP)
	totp.Post("/enable", authController.EnableTOTP)
	totp.Delete("/", authController.DisableTOTP)

	admin := app.Group("/api/v1/users",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	admin.Get("/", adminController.GetFilteredUsersController)
	admin.Get("/:id", adminController.RetrieveSingleUserController)
	admin.Post("/:id/block", adminController.BlockUserController)
	admin.Post("/:id/unblock", adminController.UnblockUserController)

	superAdmin := app.Group("/api/v1/users",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireSuperAdmin(appCtx),
	)
	superAdmin.Patch("/:id/role", adminController.SetUserRoleController)
}
