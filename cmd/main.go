package main

import (
	"context"

	"dvsubmit-backend/config"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/token"
	"dvsubmit-backend/utils"

	application_routes "dvsubmit-backend/applications/routes"
	audit_routes "dvsubmit-backend/audit/routes"
	payment_routes "dvsubmit-backend/payments/routes"
	photo_routes "dvsubmit-backend/photos/routes"
	submission_routes "dvsubmit-backend/submissions/routes"
	user_routes "dvsubmit-backend/users/routes"

	applications_repositories "dvsubmit-backend/applications/repositories"
	audit_repositories "dvsubmit-backend/audit/repositories"
	audit_services "dvsubmit-backend/audit/services"
	payments_repositories "dvsubmit-backend/payments/repositories"
	submissions_repositories "dvsubmit-backend/submissions/repositories"
	users_repositories "dvsubmit-backend/users/repositories"

	bleveRepositories "dvsubmit-backend/bleve/repositories"
	bleveRoutes "dvsubmit-backend/bleve/routes"
	bleveServices "dvsubmit-backend/bleve/services"

	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment", zap.Error(err))
	}

	app := fiber.New()
	middleware.InitCors(app)

	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)
	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	})
	defer asynqClient.Close()

	tokenMaker, err := token.NewPasetoMaker(config.GetEnv("TOKEN_SYMMETRIC_KEY"))
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	app.Static("/public", "./public")

	// Repositories
	userRepo := users_repositories.NewUserRepository(db)
	applicationRepo := applications_repositories.NewApplicationRepository(db)
	paymentRepo := payments_repositories.NewPaymentRepository(db)
	submissionRepo := submissions_repositories.NewSubmissionRepository(db)
	auditRepo := audit_repositories.NewAuditLogRepository(db)

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)

	auditRecorder := audit_services.NewRecorder(db, asynqClient)
	fileStorage := utils.NewLocalFileStorage(config.GetEnvOrDefault("UPLOADS_PATH", "./uploads"))

	appCtx := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
		UserRepo:    userRepo,
	}

	loginLimiter := middleware.NewLoginRateLimiter(5, 5)

	// Routes
	user_routes.UsersRouterInit(app, appCtx, auditRecorder, loginLimiter, bleveInterfaceRepo)
	application_routes.ApplicationsRouterInit(app, appCtx, db, applicationRepo, auditRecorder, wsHub, asynqClient, bleveInterfaceRepo)
	payment_routes.PaymentsRouterInit(app, appCtx, db, paymentRepo, auditRecorder, wsHub, asynqClient, bleveInterfaceRepo)
	submission_routes.SubmissionsRouterInit(app, appCtx, db, submissionRepo, auditRecorder, wsHub, asynqClient, bleveInterfaceRepo)
	photo_routes.PhotosRouterInit(app, appCtx, db, applicationRepo, fileStorage, auditRecorder)
	audit_routes.AuditRouterInit(app, appCtx, auditRepo)
	bleveRoutes.BleveSearchRouterInit(app, appCtx, bleveServiceRepo)

	// Real-time admin event feed.
	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker)
	app.Get("/ws", wsHandler.HandleWebSocket)

	go utils.RunScheduledCleanup()
	go reindexAll(applicationRepo, userRepo, bleveInterfaceRepo)

	if err := config.SeedInitialSuperAdmin(db); err != nil {
		config.Logger.Error("Failed to seed initial super admin", zap.Error(err))
	}

	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.Error(app.Listen(":" + port)))
}

// reindexAll rebuilds the search indexes from the database on startup so
// the index never drifts far from the source of truth.
func reindexAll(
	applicationRepo applications_repositories.ApplicationRepository,
	userRepo users_repositories.UserRepository,
	searchRepo bleveRepositories.BleveRepositoryInterface,
) {
	applications, err := applicationRepo.GetApplicationsForExport(nil)
	if err != nil {
		config.Logger.Error("Failed to load applications for indexing", zap.Error(err))
	} else if err := searchRepo.IndexExistingApplications(applications); err != nil {
		config.Logger.Error("Failed to index applications", zap.Error(err))
	}

	users, _, err := userRepo.GetFilteredUsers(10000, 0, nil)
	if err != nil {
		config.Logger.Error("Failed to load users for indexing", zap.Error(err))
	} else if err := searchRepo.IndexExistingUsers(users); err != nil {
		config.Logger.Error("Failed to index users", zap.Error(err))
	}
}
