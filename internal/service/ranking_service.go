package service

import (
	"fmt"
	"time"

	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

// 排行榜类型
const (
	RankingTypeDate     = "date"
	RankingTypeArea     = "area"
	RankingTypeDuration = "duration"
	RankingTypeSeason   = "season"
	RankingTypeTrending = "trending"
)

const defaultRankingLimit = 20

// TripRanker 排行榜所需的行程存储能力
type TripRanker interface {
	RankByDate(f model.RankingFilters, limit int) ([]model.Trip, error)
	RankByArea(f model.RankingFilters, limit int) ([]model.Trip, error)
	RankByDuration(f model.RankingFilters, limit int) ([]model.Trip, error)
	RankTrending(f model.RankingFilters, limit int) ([]model.Trip, error)
}

// RankingResult 排行榜结果
type RankingResult struct {
	Trips       []model.Trip `json:"trips"`
	RankingType string       `json:"ranking_type"`
}

// RankingService 行程排行榜，结果短缓存
type RankingService struct {
	trips TripRanker
	cache *utils.SearchCache[RankingResult]
}

// NewRankingService 创建排行榜服务
func NewRankingService(trips TripRanker) *RankingService {
	return &RankingService{
		trips: trips,
		cache: utils.NewSearchCache[RankingResult](200, 5*time.Minute),
	}
}

// Rankings 按类型取榜单。未知类型回落到 date；
// season 榜是在季节过滤之上按出发日期排序
func (s *RankingService) Rankings(rankingType string, f model.RankingFilters, limit int) (*RankingResult, error) {
	switch rankingType {
	case RankingTypeDate, RankingTypeArea, RankingTypeDuration, RankingTypeSeason, RankingTypeTrending:
	default:
		rankingType = RankingTypeDate
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	cacheKey := fmt.Sprintf("rank:%s:%s:%s:%d", rankingType, f.DurationType, f.Season, limit)
	if cached, found := s.cache.Get(cacheKey); found {
		return &cached, nil
	}

	var trips []model.Trip
	var err error
	switch rankingType {
	case RankingTypeArea:
		trips, err = s.trips.RankByArea(f, limit)
	case RankingTypeDuration:
		trips, err = s.trips.RankByDuration(f, limit)
	case RankingTypeTrending:
		trips, err = s.trips.RankTrending(f, limit)
	default:
		trips, err = s.trips.RankByDate(f, limit)
	}
	if err != nil {
		return nil, err
	}

	if trips == nil {
		trips = []model.Trip{}
	}
	model.DecorateTrips(trips, time.Now())

	result := &RankingResult{Trips: trips, RankingType: rankingType}
	s.cache.Set(cacheKey, *result)
	return result, nil
}
