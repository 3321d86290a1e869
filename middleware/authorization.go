package middleware

import (
	"time"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

// ProtectedRoute verifies the access token cookie and, when it is missing or
// stale, rotates the single-use refresh token held in Redis.
func ProtectedRoute(ctx *AppContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")
		refreshToken := c.Cookies("refresh_token")

		if accessToken != "" {
			payload, err := ctx.PasetoMaker.VerifyToken(accessToken)
			if err == nil {
				c.Locals("user", payload)
				return c.Next()
			}
			config.Logger.Debug("Invalid access token encountered", zap.Error(err))
		}

		if refreshToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		}

		refreshPayload, err := ctx.PasetoMaker.VerifyToken(refreshToken)
		if err != nil {
			config.Logger.Debug("Refresh token verification failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Session expired or invalid. Please log in again.",
			})
		}

		// The raw refresh token string is the Redis key; a hit means the
		// token has not been used yet.
		userID, err := ctx.RedisClient.Get(ctx.Ctx, "refresh_token:"+refreshToken).Result()
		if err == redis.Nil {
			config.Logger.Warn("Refresh token not found in Redis",
				zap.String("payload_id", refreshPayload.ID.String()),
				zap.String("email", refreshPayload.Email),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Session invalid. Please log in again.",
			})
		} else if err != nil {
			config.Logger.Error("Error accessing Redis for refresh token validation",
				zap.String("payload_id", refreshPayload.ID.String()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    "INTERNAL_ERROR",
				"message": "An internal server error occurred.",
			})
		}

		// Single-use: invalidate the old refresh token before issuing a new pair.
		if err := ctx.RedisClient.Del(ctx.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Warn("Error deleting old refresh token from Redis",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}

		newAccessToken, err := ctx.PasetoMaker.CreateToken(refreshPayload.UserID, refreshPayload.Email, refreshPayload.Role, accessTokenDuration)
		if err != nil {
			config.Logger.Error("Could not generate new access token", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    "INTERNAL_ERROR",
				"message": "An internal server error occurred.",
			})
		}

		newRefreshToken, err := ctx.PasetoMaker.CreateToken(refreshPayload.UserID, refreshPayload.Email, refreshPayload.Role, refreshTokenDuration)
		if err != nil {
			config.Logger.Error("Could not generate new refresh token", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    "INTERNAL_ERROR",
				"message": "An internal server error occurred.",
			})
		}

		if err := ctx.RedisClient.Set(ctx.Ctx, "refresh_token:"+newRefreshToken, userID, refreshTokenDuration).Err(); err != nil {
			config.Logger.Error("Error storing new refresh token in Redis", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    "INTERNAL_ERROR",
				"message": "An internal server error occurred.",
			})
		}

		SetAuthCookies(c, newAccessToken, newRefreshToken)

		c.Locals("user", refreshPayload)
		return c.Next()
	}
}

// SetAuthCookies writes the access/refresh token pair as HTTP-only cookies.
func SetAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	secure := config.GetEnv("COOKIE_SECURE") == "true"
	domain := config.GetEnvOrDefault("COOKIE_DOMAIN", "localhost")

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(refreshTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
		Domain:   domain,
	})
}

// CurrentPayload pulls the token payload set by ProtectedRoute.
func CurrentPayload(c *fiber.Ctx) (*token.Payload, bool) {
	payload, ok := c.Locals("user").(*token.Payload)
	return payload, ok && payload != nil
}

// RequireActiveUser resolves the caller's user record and denies blocked
// accounts. The loaded record is stored in c.Locals("actor") so controllers
// do not re-query it.
func RequireActiveUser(ctx *AppContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		}

		user, err := ctx.UserRepo.GetUserByID(payload.UserID.String())
		if err != nil {
			config.Logger.Warn("Authenticated user not found in database",
				zap.String("user_id", payload.UserID.String()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Account no longer exists",
			})
		}

		if user.Blocked {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"code":    "FORBIDDEN",
				"message": "Account is blocked",
			})
		}

		c.Locals("actor", user)
		return c.Next()
	}
}

// RequireAdmin allows ADMIN and SUPER_ADMIN roles only.
func RequireAdmin(ctx *AppContext) fiber.Handler {
	return requireRole(ctx, func(u *models.User) bool { return u.IsAdmin() })
}

// RequireSuperAdmin allows SUPER_ADMIN only.
func RequireSuperAdmin(ctx *AppContext) fiber.Handler {
	return requireRole(ctx, func(u *models.User) bool { return u.IsSuperAdmin() })
}

func requireRole(ctx *AppContext, allowed func(*models.User) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		}

		user, err := ctx.UserRepo.GetUserByID(payload.UserID.String())
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Account no longer exists",
			})
		}

		if !allowed(user) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions",
			})
		}

		c.Locals("actor", user)
		return c.Next()
	}
}

// Actor returns the user record resolved by RequireActiveUser/RequireAdmin.
func Actor(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("actor").(*models.User)
	return user, ok && user != nil
}

// IssueSession mints an access/refresh token pair for the user, stores the
// refresh token in Redis for single-use rotation and writes both cookies.
func IssueSession(ctx *AppContext, c *fiber.Ctx, user *models.User) error {
	accessToken, err := ctx.PasetoMaker.CreateToken(user.ID, user.Email, user.Role, accessTokenDuration)
	if err != nil {
		return err
	}

	refreshToken, err := ctx.PasetoMaker.CreateToken(user.ID, user.Email, user.Role, refreshTokenDuration)
	if err != nil {
		return err
	}

	if err := ctx.RedisClient.Set(ctx.Ctx, "refresh_token:"+refreshToken, user.ID.String(), refreshTokenDuration).Err(); err != nil {
		return err
	}

	SetAuthCookies(c, accessToken, refreshToken)
	return nil
}

// ClearSession drops the refresh token from Redis and expires both cookies.
func ClearSession(ctx *AppContext, c *fiber.Ctx) {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		if err := ctx.RedisClient.Del(ctx.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Warn("Failed to revoke refresh token", zap.Error(err))
		}
	}

	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
	}
}
