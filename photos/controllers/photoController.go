package controllers

import (
	"errors"
	"io"

	apprepositories "dvsubmit-backend/applications/repositories"
	appservices "dvsubmit-backend/applications/services"
	auditservices "dvsubmit-backend/audit/services"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/photos/repositories"
	"dvsubmit-backend/photos/services"
	"dvsubmit-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxPhotoBytes = 5 * 1024 * 1024

// PhotoController stores entry photos and serves them back through
// short-lived signed URLs.
type PhotoController struct {
	ApplicationRepo apprepositories.ApplicationRepository
	PhotoRepo       repositories.PhotoRepository
	Storage         utils.FileStorage
	SignedURLs      *services.SignedURLService
	AuditRecorder   *auditservices.Recorder
}

func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var svcErr *appservices.ServiceError
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
		"code":    appservices.CodeInternalError,
		"message": fallback,
	})
}

// ownMutableApplication loads the caller's application and rejects photo
// changes once the entry is frozen.
func (pc *PhotoController) ownMutableApplication(c *fiber.Ctx) (*models.Application, error) {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return nil, appservices.NewServiceError(appservices.CodeUnauthorized, "authentication required")
	}

	application, err := pc.ApplicationRepo.GetApplicationByUserID(payload.UserID)
	if err != nil {
		return nil, appservices.NewServiceError(appservices.CodeNotFound, "application not found")
	}

	if err := appservices.EnsureMutable(application); err != nil {
		return nil, err
	}
	return application, nil
}

// UploadPhotoController accepts a multipart image for one photo slot.
func (pc *PhotoController) UploadPhotoController(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if !services.ValidSlot(slot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Unknown photo slot",
		})
	}

	application, err := pc.ownMutableApplication(c)
	if err != nil {
		return respondServiceError(c, err, "Failed to upload photo")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "A photo file is required",
		})
	}
	if fileHeader.Size > maxPhotoBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": "Photo must be 5MB or smaller",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		config.Logger.Error("Failed to open uploaded photo", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to read uploaded photo",
		})
	}
	defer file.Close()

	key := services.StorageKey(application.ID.String(), slot)
	if _, err := pc.Storage.UploadFile(file, key); err != nil {
		config.Logger.Error("Failed to store photo", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to store photo",
		})
	}

	if err := pc.PhotoRepo.SetPhotoPath(application, slot, &key); err != nil {
		return respondServiceError(c, err, "Failed to record photo")
	}

	pc.AuditRecorder.Record(auditservices.Entry{
		ActorID:       &application.UserID,
		ApplicationID: &application.ID,
		Action:        models.AuditPhotoUploaded,
		Details:       map[string]interface{}{"slot": slot},
		IPAddress:     c.IP(),
		UserAgent:     c.Get("User-Agent"),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Photo uploaded",
		"data":    fiber.Map{"slot": slot, "key": key},
	})
}

// DeletePhotoController removes a photo from a still-editable entry.
func (pc *PhotoController) DeletePhotoController(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if !services.ValidSlot(slot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Unknown photo slot",
		})
	}

	application, err := pc.ownMutableApplication(c)
	if err != nil {
		return respondServiceError(c, err, "Failed to delete photo")
	}

	key := services.StorageKey(application.ID.String(), slot)
	if err := pc.Storage.DeleteFile(key); err != nil {
		config.Logger.Warn("Failed to delete stored photo", zap.String("key", key), zap.Error(err))
	}

	if err := pc.PhotoRepo.SetPhotoPath(application, slot, nil); err != nil {
		return respondServiceError(c, err, "Failed to clear photo")
	}

	pc.AuditRecorder.Record(auditservices.Entry{
		ActorID:       &application.UserID,
		ApplicationID: &application.ID,
		Action:        models.AuditPhotoDeleted,
		Details:       map[string]interface{}{"slot": slot},
		IPAddress:     c.IP(),
		UserAgent:     c.Get("User-Agent"),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Photo deleted",
	})
}

// GetPhotoURLController issues a signed, single-use download link. Owners
// get links for their own entry, admins for any entry via ?application_id.
func (pc *PhotoController) GetPhotoURLController(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if !services.ValidSlot(slot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Unknown photo slot",
		})
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	var application *models.Application
	var err error
	if appID := c.Query("application_id"); appID != "" && actor.IsAdmin() {
		application, err = pc.ApplicationRepo.GetApplicationByID(appID)
	} else {
		application, err = pc.ApplicationRepo.GetApplicationByUserID(actor.ID)
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "Application not found",
		})
	}

	key := services.StorageKey(application.ID.String(), slot)
	exists, err := pc.Storage.FileExists(key)
	if err != nil || !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "No photo uploaded for this slot",
		})
	}

	token, err := pc.SignedURLs.Issue(key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to create download link",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"url": "/api/v1/photos/view?token=" + token},
	})
}

// ViewPhotoController streams the photo behind a signed token. The token is
// the whole authorization, the route itself is public.
func (pc *PhotoController) ViewPhotoController(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "A token is required",
		})
	}

	key, err := pc.SignedURLs.Redeem(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Download link expired",
		})
	}

	reader, err := pc.Storage.DownloadFile(key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "Photo no longer exists",
		})
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		config.Logger.Error("Failed to read stored photo", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to read photo",
		})
	}

	c.Set("Content-Type", "image/jpeg")
	return c.Send(data)
}
