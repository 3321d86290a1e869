package middleware

import (
	"context"

	"dvsubmit-backend/token"
	"dvsubmit-backend/users/repositories"

	"github.com/redis/go-redis/v9"
)

// AppContext bundles the dependencies the auth middleware needs
type AppContext struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
	UserRepo    repositories.UserRepository
}
