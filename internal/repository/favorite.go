package repository

import (
	"time"

	"github.com/user/tourhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add 添加收藏。依赖 (user_id, trip_id) 唯一约束兜底并发，
// 返回 false 表示已收藏过（由调用方拒绝，而不是静默吞掉）
func (r *FavoriteRepository) Add(userID string, tripID int) (bool, error) {
	favorite := &model.Favorite{
		UserID:    userID,
		TripID:    tripID,
		CreatedAt: time.Now(),
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "trip_id"}},
		DoNothing: true,
	}).Create(favorite)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove 取消收藏，返回 false 表示收藏不存在
func (r *FavoriteRepository) Remove(userID string, tripID int) (bool, error) {
	result := r.db.Where("user_id = ? AND trip_id = ?", userID, tripID).Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsFavorited 检查是否已收藏
func (r *FavoriteRepository) IsFavorited(userID string, tripID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser 获取用户收藏列表（带行程）
func (r *FavoriteRepository) ListByUser(userID string, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Preload("Trip").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&favorites).Error
	return favorites, err
}

// CountByUser 统计用户收藏数量
func (r *FavoriteRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create 记录一次分享
func (r *ShareRepository) Create(share *model.Share) error {
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now()
	}
	return r.db.Create(share).Error
}
