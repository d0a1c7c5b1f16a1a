package service

import (
	"errors"
	"log"
	"time"

	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

// ErrTripNotFound 行程不存在
var ErrTripNotFound = errors.New("行程不存在")

// TripFinder 按 ID 查行程，各服务共用
type TripFinder interface {
	FindByID(id int) (*model.Trip, error)
}

// TripStore 行程详情和推荐所需的存储能力
type TripStore interface {
	TripFinder
	ListAreas() ([]string, error)
	FindNearest(id, limit int) ([]model.Trip, error)
	FindByAreaExcept(area string, exceptID, limit int) ([]model.Trip, error)
}

// DetailStore 行程站点的读取能力
type DetailStore interface {
	ListByTrip(tripID int) ([]model.TripDetail, error)
}

// ParticipantStore 行程参与者的读取能力
type ParticipantStore interface {
	ListByTrip(tripID int) ([]model.Participant, error)
}

// TripDetailResult 行程详情聚合
type TripDetailResult struct {
	Trip         *model.Trip         `json:"trip"`
	Details      []model.TripDetail  `json:"details"`
	Participants []model.Participant `json:"participants"`
	Stats        *model.TripStats    `json:"stats,omitempty"`
}

// FilterOptions 前端筛选器的可选值
type FilterOptions struct {
	Areas         []string `json:"areas"`
	Seasons       []string `json:"seasons"`
	DurationTypes []string `json:"duration_types"`
}

// TripService 行程详情、筛选器和相似推荐
type TripService struct {
	trips        TripStore
	details      DetailStore
	participants ParticipantStore
	stats        StatsStore
}

// NewTripService 创建行程服务
func NewTripService(trips TripStore, details DetailStore, participants ParticipantStore, stats StatsStore) *TripService {
	return &TripService{trips: trips, details: details, participants: participants, stats: stats}
}

// Detail 行程详情：主体加衍生字段、按日期和时间排好序的站点、参与者和统计
func (s *TripService) Detail(id int) (*TripDetailResult, error) {
	trip, err := s.trips.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	trip.Decorate(time.Now())

	details, err := s.details.ListByTrip(id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []model.TripDetail{}
	}

	participants, err := s.participants.ListByTrip(id)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}

	// 统计行可能还没建，缺失不算错
	stats, err := s.stats.GetByTrip(id)
	if err != nil {
		log.Printf("[TripService] 读取行程统计失败 trip=%d: %v", id, err)
		stats = nil
	}

	return &TripDetailResult{
		Trip:         trip,
		Details:      details,
		Participants: participants,
		Stats:        stats,
	}, nil
}

// Filters 筛选器可选值。地区列表走全局缓存，季节和天数分类是固定枚举
func (s *TripService) Filters() (*FilterOptions, error) {
	var areas []string
	if cached, found := utils.CacheGet("filters:areas"); found {
		areas, _ = cached.([]string)
	}
	if areas == nil {
		var err error
		areas, err = s.trips.ListAreas()
		if err != nil {
			return nil, err
		}
		if areas == nil {
			areas = []string{}
		}
		utils.CacheSet("filters:areas", areas, 10*time.Minute)
	}

	return &FilterOptions{
		Areas:         areas,
		Seasons:       []string{model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn, model.SeasonWinter},
		DurationTypes: []string{model.DurationWeekend, model.DurationShortTrip, model.DurationLongBreak, model.DurationDeepTravel},
	}, nil
}

// Similar 相似行程推荐：优先按向量距离，源行程没有嵌入或没命中时退回同地区
func (s *TripService) Similar(id, limit int) ([]model.Trip, error) {
	trip, err := s.trips.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if limit <= 0 {
		limit = 6
	}

	var similar []model.Trip
	if trip.Embedding != nil {
		similar, err = s.trips.FindNearest(id, limit)
		if err != nil {
			log.Printf("[TripService] 向量检索失败 trip=%d: %v", id, err)
			similar = nil
		}
	}
	if len(similar) == 0 && trip.Area != "" {
		similar, err = s.trips.FindByAreaExcept(trip.Area, id, limit)
		if err != nil {
			return nil, err
		}
	}
	if similar == nil {
		similar = []model.Trip{}
	}

	model.DecorateTrips(similar, time.Now())
	return similar, nil
}
