package controllers

import (
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/users/requests"

	"github.com/gofiber/fiber/v2"
)

// SetupTOTP generates a fresh secret for the calling admin. The secret is
// not active until confirmed with a valid code via EnableTOTP.
func (ac *AuthController) SetupTOTP(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	setup, err := ac.OtpService.GenerateTOTPSecret(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to generate authenticator secret",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Scan the QR code, then confirm with a code",
		"data":    setup,
	})
}

func (ac *AuthController) EnableTOTP(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	var req requests.EnableTOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	if err := ac.OtpService.EnableTOTP(actor, req.Code); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Authenticator second factor enabled",
	})
}

func (ac *AuthController) DisableTOTP(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	if err := ac.OtpService.DisableTOTP(actor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to disable authenticator second factor",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Authenticator second factor disabled",
	})
}
