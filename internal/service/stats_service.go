package service

import (
	"errors"
	"log"

	"github.com/user/tourhub/internal/model"
)

// ErrInvalidAction 不认识的统计动作
var ErrInvalidAction = errors.New("无效的统计动作")

// StatsStore 统计计数的存储能力
type StatsStore interface {
	EnsureExists(tripID int) error
	Increment(tripID int, action string) (*model.TripStats, error)
	SetPopularity(tripID int, score float64) error
	GetByTrip(tripID int) (*model.TripStats, error)
}

// ShareStore 分享记录的存储能力
type ShareStore interface {
	Create(share *model.Share) error
}

// StatsService 行程互动统计：计数递增后同步重算热度分
type StatsService struct {
	trips  TripFinder
	stats  StatsStore
	shares ShareStore
}

// NewStatsService 创建统计服务
func NewStatsService(trips TripFinder, stats StatsStore, shares ShareStore) *StatsService {
	return &StatsService{trips: trips, stats: stats, shares: shares}
}

// Record 记录一次互动并返回最新统计。
// 统计行不存在时先惰性创建；share 动作额外留一条分享明细
func (s *StatsService) Record(tripID int, action string, userID *string, platform string) (*model.TripStats, error) {
	switch action {
	case model.ActionView, model.ActionFavoriteAdd, model.ActionFavoriteRemove, model.ActionShare:
	default:
		return nil, ErrInvalidAction
	}

	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if err := s.stats.EnsureExists(tripID); err != nil {
		return nil, err
	}

	stats, err := s.stats.Increment(tripID, action)
	if err != nil {
		return nil, err
	}

	// 热度分随计数同步重算，排序端直接读冗余列
	score := model.PopularityScore(stats.FavoriteCount, stats.ShareCount, stats.ViewCount)
	if err := s.stats.SetPopularity(tripID, score); err != nil {
		log.Printf("[StatsService] 更新热度分失败 trip=%d: %v", tripID, err)
	} else {
		stats.PopularityScore = score
	}

	if action == model.ActionShare {
		share := &model.Share{TripID: tripID, UserID: userID, Platform: platform}
		if err := s.shares.Create(share); err != nil {
			log.Printf("[StatsService] 记录分享明细失败 trip=%d: %v", tripID, err)
		}
	}

	return stats, nil
}
