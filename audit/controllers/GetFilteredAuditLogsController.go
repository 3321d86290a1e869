package controllers

import (
	"dvsubmit-backend/audit/repositories"
	"dvsubmit-backend/config"
	"dvsubmit-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuditLogController struct {
	AuditRepo repositories.AuditLogRepository
}

// GetFilteredAuditLogsController lists audit entries for the admin back
// office, newest first, filterable by action, actor, application and date.
func (ac *AuditLogController) GetFilteredAuditLogsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	logs, total, err := ac.AuditRepo.GetFilteredAuditLogs(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch audit logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch audit logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    pagination.NewPaginatedResponse(c, logs, total, params),
	})
}
