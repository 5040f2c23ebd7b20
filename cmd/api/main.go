package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	handlerHttp "github.com/mikiasgoitom/Edulearn/internal/handler/http"
	redisclient "github.com/mikiasgoitom/Edulearn/internal/infrastructure/cache"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/config"
	database "github.com/mikiasgoitom/Edulearn/internal/infrastructure/database"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/Edulearn/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/Edulearn/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/repository/postgres"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/store"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Edulearn/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slogger, sentryEnabled := logger.New(logger.Options{
		Level:       appConfig.LogLevel,
		SentryDSN:   appConfig.SentryDSN,
		Environment: appConfig.Environment,
	})
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}
	slog.SetDefault(slogger)
	appLogger := logger.NewAppLogger(slogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Establish PostgreSQL connection
	db, err := database.Open(ctx, appConfig.DatabaseDSN(), database.DefaultOptions())
	if err != nil {
		slogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, slogger); err != nil {
		slogger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Dependency Injection: Repositories
	userRepo := postgres.NewUserRepository(db)
	courseRepo := postgres.NewCourseRepository(db)

	// Dependency Injection: Services
	hasher, err := passwordservice.NewHasherWithCost(appConfig.BcryptCost)
	if err != nil {
		slogger.Error("invalid bcrypt cost", "error", err)
		os.Exit(1)
	}
	jwtManager, err := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.GetJWTExpiry())
	if err != nil {
		slogger.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}
	jwtService := jwt.NewJWTService(jwtManager)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, jwtService, appLogger, uuidGenerator)
	courseUsecase := usecase.NewCourseUseCase(courseRepo, courseRepo, uuidGenerator, appLogger)

	readiness := map[string]handlerHttp.ReadinessCheck{
		"database": db.PingContext,
	}

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		if err != nil {
			slogger.Warn("redis unavailable, course cache disabled", "error", err)
		} else {
			defer redisclient.Close(rdb)
			courseUsecase.SetCourseCache(store.NewCourseCacheStore(rdb))
			readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Setup API routes
	appRouter := handlerHttp.NewRouter(
		userUsecase, courseUsecase,
		appValidator, appLogger, appConfig, randomGenerator,
		readiness,
	)
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slogger.Info("server running", "port", appConfig.GetPort(), "environment", appConfig.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("graceful shutdown failed", "error", err)
	}
}
