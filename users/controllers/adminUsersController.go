package controllers

import (
	"dvsubmit-backend/audit/services"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/users/repositories"
	"dvsubmit-backend/users/requests"
	"dvsubmit-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminUsersController serves the back-office user management surface.
type AdminUsersController struct {
	UserRepo      repositories.UserRepository
	AuditRecorder *services.Recorder
}

func (uc *AdminUsersController) GetFilteredUsersController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize
	users, total, err := uc.UserRepo.GetFilteredUsers(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    pagination.NewPaginatedResponse(c, users, total, params),
	})
}

func (uc *AdminUsersController) RetrieveSingleUserController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid user id",
		})
	}

	user, err := uc.UserRepo.GetUserByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func (uc *AdminUsersController) BlockUserController(c *fiber.Ctx) error {
	return uc.setBlocked(c, true, models.AuditUserBlocked, "User blocked")
}

func (uc *AdminUsersController) UnblockUserController(c *fiber.Ctx) error {
	return uc.setBlocked(c, false, models.AuditUserUnblocked, "User unblocked")
}

func (uc *AdminUsersController) setBlocked(c *fiber.Ctx, blocked bool, auditAction, message string) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid user id",
		})
	}

	if userID == actor.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "You cannot block your own account",
		})
	}

	user, err := uc.UserRepo.SetUserBlocked(userID, blocked, actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "User not found",
		})
	}

	uc.AuditRecorder.Record(services.Entry{
		ActorID:   &actor.ID,
		Action:    auditAction,
		Details:   map[string]interface{}{"user_id": user.ID.String(), "email": user.Email},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    user,
	})
}

// SetUserRoleController promotes or demotes an account. Restricted to
// SUPER_ADMIN by the route chain.
func (uc *AdminUsersController) SetUserRoleController(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid user id",
		})
	}

	var req requests.SetUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	role := models.Role(req.Role)
	switch role {
	case models.UserRole, models.AdminRole, models.SuperAdminRole:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": "Role must be USER, ADMIN or SUPER_ADMIN",
		})
	}

	if userID == actor.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "You cannot change your own role",
		})
	}

	user, err := uc.UserRepo.SetUserRole(userID, role, actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "User not found",
		})
	}

	uc.AuditRecorder.Record(services.Entry{
		ActorID:   &actor.ID,
		Action:    models.AuditUserRoleChanged,
		Details:   map[string]interface{}{"user_id": user.ID.String(), "role": string(role)},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role updated",
		"data":    user,
	})
}
