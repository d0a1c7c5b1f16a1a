package repository

import (
	"time"

	"github.com/user/tourhub/internal/model"
	"gorm.io/gorm"
)

type TripDetailRepository struct {
	db *gorm.DB
}

func NewTripDetailRepository(db *gorm.DB) *TripDetailRepository {
	return &TripDetailRepository{db: db}
}

// ListByTrip 获取行程的全部站点，按日期和开始时间升序
func (r *TripDetailRepository) ListByTrip(tripID int) ([]model.TripDetail, error) {
	var details []model.TripDetail
	err := r.db.Where("trip_id = ?", tripID).
		Order("date ASC, start_time ASC").
		Find(&details).Error
	return details, err
}

// CountByTrip 统计行程的站点数量
func (r *TripDetailRepository) CountByTrip(tripID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.TripDetail{}).Where("trip_id = ?", tripID).Count(&count).Error
	return count, err
}

// BatchCreate 批量创建站点（后台按地区种子数据填充时使用）
func (r *TripDetailRepository) BatchCreate(details []model.TripDetail) error {
	if len(details) == 0 {
		return nil
	}
	now := time.Now()
	for i := range details {
		if details[i].CreatedAt.IsZero() {
			details[i].CreatedAt = now
		}
	}
	return r.db.Create(&details).Error
}

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// ListByTrip 获取行程参与者
func (r *ParticipantRepository) ListByTrip(tripID int) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.Where("trip_id = ?", tripID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}
