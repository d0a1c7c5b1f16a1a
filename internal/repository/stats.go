package repository

import (
	"errors"
	"fmt"

	"github.com/user/tourhub/internal/model"
	"gorm.io/gorm"
)

type TripStatsRepository struct {
	db *gorm.DB
}

func NewTripStatsRepository(db *gorm.DB) *TripStatsRepository {
	return &TripStatsRepository{db: db}
}

// EnsureExists 惰性创建统计行，已存在时静默跳过
func (r *TripStatsRepository) EnsureExists(tripID int) error {
	return r.db.Exec(`
		INSERT INTO trip_stats (trip_id, favorite_count, share_count, view_count, popularity_score, updated_at)
		VALUES (?, 0, 0, 0, 0, NOW())
		ON CONFLICT (trip_id) DO NOTHING
	`, tripID).Error
}

// Increment 按动作原子增减计数并返回最新统计。
// favorite_remove 以 0 为下限，view/share 只增不减
func (r *TripStatsRepository) Increment(tripID int, action string) (*model.TripStats, error) {
	var set string
	switch action {
	case model.ActionView:
		set = "view_count = view_count + 1"
	case model.ActionFavoriteAdd:
		set = "favorite_count = favorite_count + 1"
	case model.ActionFavoriteRemove:
		set = "favorite_count = GREATEST(0, favorite_count - 1)"
	case model.ActionShare:
		set = "share_count = share_count + 1"
	default:
		return nil, fmt.Errorf("未知的统计动作: %s", action)
	}

	var stats model.TripStats
	err := r.db.Raw(`
		UPDATE trip_stats SET `+set+`, updated_at = NOW()
		WHERE trip_id = ?
		RETURNING trip_id, favorite_count, share_count, view_count, popularity_score, updated_at
	`, tripID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetPopularity 写入重新计算后的热度分（冗余存储，供排序用）
func (r *TripStatsRepository) SetPopularity(tripID int, score float64) error {
	return r.db.Exec(`
		UPDATE trip_stats SET popularity_score = ?, updated_at = NOW() WHERE trip_id = ?
	`, score, tripID).Error
}

// GetByTrip 获取行程统计，不存在时返回 nil
func (r *TripStatsRepository) GetByTrip(tripID int) (*model.TripStats, error) {
	var stats model.TripStats
	err := r.db.Where("trip_id = ?", tripID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
