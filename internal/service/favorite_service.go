package service

import (
	"errors"
	"time"

	"github.com/user/tourhub/internal/model"
)

var (
	// ErrAlreadyFavorited 重复收藏是冲突，不静默吞掉
	ErrAlreadyFavorited = errors.New("已收藏过该行程")
	// ErrFavoriteNotFound 取消一个不存在的收藏
	ErrFavoriteNotFound = errors.New("收藏不存在")
)

// FavoriteStore 收藏的存储能力
type FavoriteStore interface {
	Add(userID string, tripID int) (bool, error)
	Remove(userID string, tripID int) (bool, error)
	IsFavorited(userID string, tripID int) (bool, error)
	ListByUser(userID string, limit int) ([]model.Favorite, error)
	CountByUser(userID string) (int64, error)
}

// FavoriteService 用户收藏。只维护收藏行本身，
// favorite_count 计数由统计接口单独上报
type FavoriteService struct {
	trips     TripFinder
	favorites FavoriteStore
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(trips TripFinder, favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{trips: trips, favorites: favorites}
}

// Add 收藏行程
func (s *FavoriteService) Add(userID string, tripID int) error {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrTripNotFound
	}

	inserted, err := s.favorites.Add(userID, tripID)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrAlreadyFavorited
	}
	return nil
}

// Remove 取消收藏
func (s *FavoriteService) Remove(userID string, tripID int) error {
	removed, err := s.favorites.Remove(userID, tripID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

// IsFavorited 查询是否已收藏
func (s *FavoriteService) IsFavorited(userID string, tripID int) (bool, error) {
	return s.favorites.IsFavorited(userID, tripID)
}

// List 用户收藏列表，带行程衍生字段
func (s *FavoriteService) List(userID string, limit int) ([]model.Favorite, int64, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	favorites, err := s.favorites.ListByUser(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	if favorites == nil {
		favorites = []model.Favorite{}
	}

	now := time.Now()
	for i := range favorites {
		if favorites[i].Trip != nil {
			favorites[i].Trip.Decorate(now)
		}
	}

	total, err := s.favorites.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
