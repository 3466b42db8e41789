package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"houseman.backend/internal/config"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/internal/infrastructure/datasources/postgres"
	"houseman.backend/internal/infrastructure/jobs"
	"houseman.backend/internal/infrastructure/models"
	repoimpl "houseman.backend/internal/infrastructure/repositories"
	"houseman.backend/internal/infrastructure/storage"
	"houseman.backend/internal/interfaces/http/handlers"
	"houseman.backend/internal/interfaces/http/middleware"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/jwt"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/redis"
)

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	migrateDB       = func(db *gorm.DB) error { return db.AutoMigrate(models.All()...) }
	newSessionStore = redis.NewSessionStore
	newFileStorage  = func(ctx context.Context, cfg config.StorageConfig) (repositories.FileStorage, error) {
		return storage.NewS3Storage(ctx, cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(context.Background(), "Database ready", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repoimpl.NewUserRepository(db)
	categoryRepo := repoimpl.NewCategoryRepository(db)
	serviceRepo := repoimpl.NewServiceRepository(db)
	bookingRepo := repoimpl.NewBookingRepository(db)
	conversationRepo := repoimpl.NewConversationRepository(db)
	messageRepo := repoimpl.NewMessageRepository(db)
	kycRepo := repoimpl.NewKYCRepository(db)
	uow := repoimpl.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// uploads stay disabled (503) without a bucket
	var fileStorage repositories.FileStorage
	if cfg.Storage.Enabled() {
		fileStorage, err = newFileStorage(context.Background(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		logger.Info(context.Background(), "Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		logger.Warn(context.Background(), "AWS_S3_BUCKET not set, uploads disabled")
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, cfg.Security.SessionExpiry)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, serviceRepo, userRepo, conversationRepo, uow, usecases.BookingDefaults{
		Currency: cfg.Booking.DefaultCurrency,
		Duration: cfg.Booking.DefaultDuration,
	})
	kycUsecase := usecases.NewKYCUsecase(kycRepo, userRepo, uow)
	conversationUsecase := usecases.NewConversationUsecase(conversationRepo, messageRepo, userRepo, bookingRepo, uow)
	catalogUsecase := usecases.NewCatalogUsecase(serviceRepo, categoryRepo, cfg.Booking.DefaultCurrency)
	uploadUsecase := usecases.NewUploadUsecase(fileStorage)
	adminUsecase := usecases.NewAdminUsecase(userRepo, bookingRepo, kycRepo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewBookingExpiryJob(bookingRepo, cfg.Booking.ExpiryInterval)
	go expiryJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		bookingHandler:      handlers.NewBookingHandler(bookingUsecase),
		kycHandler:          handlers.NewKYCHandler(kycUsecase),
		conversationHandler: handlers.NewConversationHandler(conversationUsecase),
		catalogHandler:      handlers.NewCatalogHandler(catalogUsecase),
		uploadHandler:       handlers.NewUploadHandler(uploadUsecase),
		adminHandler:        handlers.NewAdminHandler(adminUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService, sessionStore),
	})

	for _, route := range r.Routes() {
		logger.Debug(context.Background(), "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		expiryJob.Stop()
		cancel()
	}()

	logger.Info(context.Background(), "Houseman backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
