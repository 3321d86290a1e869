package controllers

import (
	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetMyApplicationController returns the caller's application, creating a
// fresh DRAFT on first access so the wizard always has something to load.
func (ac *ApplicationController) GetMyApplicationController(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	application, err := ac.ApplicationRepo.FindOrCreateDraft(payload.UserID)
	if err != nil {
		return respondServiceError(c, err, "Failed to load application")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    application,
	})
}

// SaveDraftController persists wizard progress. Partial payloads are fine,
// completeness is only enforced at submission time.
func (ac *ApplicationController) SaveDraftController(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	var req requests.ApplicationFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	application, err := ac.ApplicationRepo.SaveDraftFields(payload.UserID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to save draft")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Draft saved",
		"data":    application,
	})
}
