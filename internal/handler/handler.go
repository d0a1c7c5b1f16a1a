package handler

import (
	"github.com/user/tourhub/internal/config"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/repository"
	"github.com/user/tourhub/internal/service"
)

// SearchLogStore 搜索日志与热搜的存储能力
type SearchLogStore interface {
	Log(keyword string, userID *string, ipHash string) error
	GetTrending(hours, limit int) ([]*model.TrendingKeyword, error)
}

// Handler HTTP 处理器集合
type Handler struct {
	Repos      *repository.Repositories
	Config     *config.Config
	Search     *service.SearchService
	Ranking    *service.RankingService
	Stats      *service.StatsService
	Favorites  *service.FavoriteService
	Trips      *service.TripService
	Seeder     *service.SeedService
	Embeddings *service.EmbeddingService
	SearchLogs SearchLogStore
}

// NewHandler 创建处理器并装配各服务
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:      repos,
		Config:     cfg,
		Search:     service.NewSearchService(repos.Trip),
		Ranking:    service.NewRankingService(repos.Trip),
		Stats:      service.NewStatsService(repos.Trip, repos.Stats, repos.Share),
		Favorites:  service.NewFavoriteService(repos.Trip, repos.Favorite),
		Trips:      service.NewTripService(repos.Trip, repos.TripDetail, repos.Participant, repos.Stats),
		Seeder:     service.NewSeedService(repos.Trip, repos.TripDetail, repos.SeedSource),
		Embeddings: service.NewEmbeddingService(repos.Trip, cfg),
		SearchLogs: repos.SearchLog,
	}
}
