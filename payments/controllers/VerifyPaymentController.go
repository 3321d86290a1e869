package controllers

import (
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/payments/repositories"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VerifyPaymentController lets an admin approve or reject an application's
// payment after checking the transfer reference against the bank statement.
func (pc *PaymentController) VerifyPaymentController(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	applicationID := c.Params("id")
	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	tx := pc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction for payment verification",
			zap.Error(tx.Error), zap.String("application_id", applicationID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Could not start database transaction",
		})
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during payment verification, rolling back",
				zap.Any("panic_reason", r), zap.String("application_id", applicationID))
			panic(r)
		}
	}()

	application, previousStatus, err := pc.PaymentRepo.ProcessPaymentVerification(tx, applicationID, req.Action, actor.ID)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to verify payment")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit payment verification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to verify payment",
		})
	}

	pc.reindex(application)

	if req.Action == repositories.VerifyActionApprove {
		pc.recordAudit(c, &actor.ID, application, models.AuditPaymentVerified, map[string]interface{}{
			"previous_status": string(previousStatus),
			"new_status":      string(application.Status),
			"reference":       application.PaymentReference,
		})
		pc.Hub.Notify(websocket.EventPaymentVerified, application.ID, fiber.Map{
			"status": application.Status,
		})
		if application.Email != "" {
			pc.enqueueEmail(application.Email,
				"DVSubmit: payment verified",
				"Your payment has been verified. Your application is now queued for submission to the DV lottery.")
		}
	} else {
		pc.recordAudit(c, &actor.ID, application, models.AuditPaymentRejected, map[string]interface{}{
			"previous_status": string(previousStatus),
			"new_status":      string(application.Status),
		})
		if application.Email != "" {
			pc.enqueueEmail(application.Email,
				"DVSubmit: payment could not be verified",
				"We could not match your payment reference against our bank statement. Check the reference and enter it again from your dashboard.")
		}
	}

	message := "Payment verified"
	if req.Action == repositories.VerifyActionReject {
		message = "Payment rejected"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    application,
	})
}
