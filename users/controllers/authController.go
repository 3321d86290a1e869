package controllers

import (
	"strings"

	"dvsubmit-backend/audit/services"
	bleverepositories "dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/users/repositories"
	"dvsubmit-backend/users/requests"
	userservices "dvsubmit-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthController handles registration, login and the authenticator second
// factor for admin accounts.
type AuthController struct {
	UserRepo      repositories.UserRepository
	OtpService    userservices.OtpService
	AuditRecorder *services.Recorder
	AppCtx        *middleware.AppContext
	SearchRepo    bleverepositories.BleveRepositoryInterface
}

func (ac *AuthController) RegisterUser(c *fiber.Ctx) error {
	var req requests.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing registration body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	if msg := userservices.ValidateRegistration(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": msg,
		})
	}

	hashed, err := userservices.HashPassword(req.Password)
	if err != nil {
		config.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to create account",
		})
	}

	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    hashed,
		Role:        models.UserRole,
	}

	created, err := ac.UserRepo.CreateUser(user)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"code":    "DUPLICATE_EMAIL",
			"message": "An account with that email already exists",
		})
	}

	if ac.SearchRepo != nil {
		if err := ac.SearchRepo.IndexSingleUser(*created); err != nil {
			config.Logger.Warn("Failed to index new user", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created",
		"data":    created,
	})
}

func (ac *AuthController) LoginUser(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(req.Email)
	if err != nil || !userservices.CheckPasswordHash(req.Password, user.Password) {
		config.Logger.Warn("Failed login attempt", zap.String("email", req.Email))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Invalid email or password",
		})
	}

	if user.Blocked {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    "FORBIDDEN",
			"message": "Account is blocked",
		})
	}

	if user.TOTPEnabled {
		preToken, err := ac.OtpService.CreateLoginChallenge(user.ID.String())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    "INTERNAL_ERROR",
				"message": "Failed to start authenticator verification",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Authenticator code required",
			"data": fiber.Map{
				"requires_totp": true,
				"user_id":       user.ID.String(),
				"pre_token":     preToken,
			},
		})
	}

	return ac.completeLogin(c, user)
}

func (ac *AuthController) ValidateTOTP(c *fiber.Ctx) error {
	var req requests.ValidateTOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	if !ac.OtpService.ConsumeLoginChallenge(req.UserID, req.PreToken) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Login challenge expired, sign in again",
		})
	}

	user, err := ac.UserRepo.GetUserByID(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Account no longer exists",
		})
	}

	if !ac.OtpService.ValidateTOTPCode(user, req.Code) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Invalid authenticator code",
		})
	}

	return ac.completeLogin(c, user)
}

func (ac *AuthController) completeLogin(c *fiber.Ctx, user *models.User) error {
	if err := middleware.IssueSession(ac.AppCtx, c, user); err != nil {
		config.Logger.Error("Failed to issue session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to sign in",
		})
	}

	if err := ac.UserRepo.TouchLastLogin(user.ID); err != nil {
		config.Logger.Warn("Failed to record last login", zap.Error(err))
	}

	ac.AuditRecorder.Record(services.Entry{
		ActorID:   &user.ID,
		Action:    models.AuditUserLoggedIn,
		Details:   map[string]interface{}{"email": user.Email},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed in",
		"data":    user,
	})
}

func (ac *AuthController) LogoutUser(c *fiber.Ctx) error {
	middleware.ClearSession(ac.AppCtx, c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed out",
	})
}
