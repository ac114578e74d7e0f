package main

import (
	"context"
	"log"
	nethttp "net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/retail-manager/internal/alerts"
	"github.com/rogerio-castellano/retail-manager/internal/auth"
	"github.com/rogerio-castellano/retail-manager/internal/config"
	"github.com/rogerio-castellano/retail-manager/internal/db"
	"github.com/rogerio-castellano/retail-manager/internal/http"
	"github.com/rogerio-castellano/retail-manager/internal/http/handlers"
	rl "github.com/rogerio-castellano/retail-manager/internal/http/rate_limiter"
	"github.com/rogerio-castellano/retail-manager/internal/redissvc"
	"github.com/rogerio-castellano/retail-manager/internal/repo"
)

// @title Retail Manager API
// @version 1.0
// @description REST API for a small-business retail backend: clients, catalog, checkout, sales history and low-stock alerts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	auth.SetSecret(cfg.JWTSecret)
	alerts.Configure(alerts.Settings{
		From:         cfg.AlertFrom,
		To:           cfg.AlertTo,
		SMTPServer:   cfg.SMTPServer,
		SMTPPort:     cfg.SMTPPort,
		SMTPUser:     cfg.SMTPUser,
		SMTPPassword: cfg.SMTPPassword,
		AuthDisabled: cfg.SMTPAuthDisabled,
	})

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go alerts.StartDailySummary(24 * time.Hour)
	go rl.StartVisitorCleanupLoop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)
	alerts.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("❌ Could not prepare schema:", err)
	}

	handlers.SetClientRepo(repo.NewPostgresClientRepository(database))
	handlers.SetCategoryRepo(repo.NewPostgresCategoryRepository(database))
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetSaleRepo(repo.NewPostgresSaleRepository(database))
	handlers.SetNoteRepo(repo.NewPostgresNoteRepository(database))
	handlers.SetPromoRepo(repo.NewPostgresPromoRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))

	r := http.RateLimitMiddleware(http.NewRouter())
	log.Println("✅ Server running on", cfg.HTTPAddr)
	if err := nethttp.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
