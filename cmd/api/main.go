package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	adapterHTTP "github.com/stridehq/stride-engine/internal/adapters/handler/http"
	"github.com/stridehq/stride-engine/internal/adapters/cache"
	"github.com/stridehq/stride-engine/internal/adapters/repository"
	"github.com/stridehq/stride-engine/internal/adapters/scheduler"
	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/services"
	"github.com/stridehq/stride-engine/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	serverPort := envOr("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

	loc, err := time.LoadLocation(envOr("TIMEZONE", "Local"))
	if err != nil {
		log.Fatalf("Critical: invalid TIMEZONE: %v", err)
	}
	clock := domain.NewSystemClock(loc)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisClient, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and external scheduler: %v", err)
		redisClient = nil
	}

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	var reminderScheduler domain.ReminderScheduler
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient)
		reminderScheduler = scheduler.NewRedisScheduler(redisClient)
	} else {
		reminderScheduler = scheduler.NewInMemoryScheduler()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminderWorker := workers.NewReminderWorker(habitRepo, reminderScheduler)
	reminderWorker.Start(ctx)

	tokenService := services.NewTokenService(jwtSecret, "stride-engine", 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService, clock)
	reminderService := services.NewReminderService(habitRepo, reminderScheduler)
	habitService := services.NewHabitService(habitRepo, statsRepo, reminderService, reminderWorker, clock)
	streakService := services.NewStreakService(habitRepo, clock)
	trackerService := services.NewTrackerService(habitRepo, statsRepo, streakService, reminderWorker, clock)
	rolloverService := services.NewRolloverService(habitRepo, statsRepo, reminderWorker, clock)
	insightsService := services.NewInsightsService(habitRepo, statsRepo, clock)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		TrackerHandler:  adapterHTTP.NewTrackerHandler(trackerService, rolloverService),
		StatsHandler:    adapterHTTP.NewStatsHandler(insightsService),
		ReminderHandler: adapterHTTP.NewReminderHandler(reminderService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Stride Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
