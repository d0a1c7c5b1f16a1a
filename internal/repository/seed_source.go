package repository

import (
	"errors"

	"github.com/user/tourhub/internal/model"
	"gorm.io/gorm"
)

type SeedSourceRepository struct {
	db *gorm.DB
}

func NewSeedSourceRepository(db *gorm.DB) *SeedSourceRepository {
	return &SeedSourceRepository{db: db}
}

// FindByArea 查找某地区启用的种子来源
func (r *SeedSourceRepository) FindByArea(area string) (*model.SeedSource, error) {
	var source model.SeedSource
	err := r.db.Where("area = ? AND enabled = TRUE", area).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// ListEnabled 获取全部启用的种子来源
func (r *SeedSourceRepository) ListEnabled() ([]*model.SeedSource, error) {
	var sources []*model.SeedSource
	err := r.db.Where("enabled = TRUE").Order("area").Find(&sources).Error
	return sources, err
}
