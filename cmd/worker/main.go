package main

import (
	"dvsubmit-backend/config"
	"dvsubmit-backend/tasks"
	"dvsubmit-backend/utils"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker drains the background queue: email notifications and
// dead-lettered audit entries.
func main() {
	config.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment", zap.Error(err))
	}

	db := config.ConfigureDatabase()

	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: config.GetEnv("REDIS_PASSWORD"),
			DB:       0,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	mux := asynq.NewServeMux()
	tasks.NewHandlers(db).Register(mux)

	config.Logger.Info("Worker starting", zap.String("redis", redisAddr))
	if err := srv.Run(mux); err != nil {
		config.Logger.Fatal("Worker failed", zap.Error(err))
	}
}
