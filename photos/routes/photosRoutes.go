package routes

import (
	apprepositories "dvsubmit-backend/applications/repositories"
	auditservices "dvsubmit-backend/audit/services"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/photos/controllers"
	"dvsubmit-backend/photos/repositories"
	"dvsubmit-backend/photos/services"
	"dvsubmit-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PhotosRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	db *gorm.DB,
	applicationRepo apprepositories.ApplicationRepository,
	storage utils.FileStorage,
	auditRecorder *auditservices.Recorder,
) {
	photoController := &controllers.PhotoController{
		ApplicationRepo: applicationRepo,
		PhotoRepo:       repositories.NewPhotoRepository(db),
		Storage:         storage,
		SignedURLs:      services.NewSignedURLService(appCtx.RedisClient, appCtx.Ctx),
		AuditRecorder:   auditRecorder,
	}

	// Signed token is the authorization for viewing, no session needed.
	app.Get("/api/v1/photos/view", photoController.ViewPhotoController)

	photos := app.Group("/api/v1/photos",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireActiveUser(appCtx),
	)
	photos.Post("/:slot", photoController.UploadPhotoController)
	photos.Delete("/:slot", photoController.DeletePhotoController)
	photos.Get("/:slot/url", photoController.GetPhotoURLController)
}
