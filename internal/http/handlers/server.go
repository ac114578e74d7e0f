package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/retail-manager/internal/redissvc"
	repo "github.com/rogerio-castellano/retail-manager/internal/repo"
)

var (
	clientRepo   repo.ClientRepository
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	saleRepo     repo.SaleRepository
	noteRepo     repo.NoteRepository
	promoRepo    repo.PromoRepository
	userRepo     repo.UserRepository
	metricsRepo  repo.MetricsRepository

	Rdb *redis.Client
	Ctx context.Context
)

func SetClientRepo(r repo.ClientRepository) {
	clientRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetNoteRepo(r repo.NoteRepository) {
	noteRepo = r
}

func SetPromoRepo(r repo.PromoRepository) {
	promoRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
