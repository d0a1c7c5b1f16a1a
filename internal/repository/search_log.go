package repository

import (
	"fmt"
	"time"

	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
	"gorm.io/gorm"
)

type SearchLogRepository struct {
	db *gorm.DB
}

func NewSearchLogRepository(db *gorm.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// Log 记录搜索日志并累加热搜关键词
func (r *SearchLogRepository) Log(keyword string, userID *string, ipHash string) error {
	// 1. 记录原始日志
	entry := &model.SearchLog{
		Keyword:   keyword,
		UserID:    userID,
		IPHash:    ipHash,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}

	// 2. 更新热搜关键词统计表
	return r.db.Exec(`
		INSERT INTO trending_keywords (keyword, count, last_searched_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (keyword) DO UPDATE SET
			count = trending_keywords.count + 1,
			last_searched_at = EXCLUDED.last_searched_at
	`, keyword).Error
}

// GetTrending 获取热搜关键词
// hours > 0 时从原始日志实时统计指定时间窗，否则读全量汇总表
func (r *SearchLogRepository) GetTrending(hours, limit int) ([]*model.TrendingKeyword, error) {
	// 1. 检查缓存
	cacheKey := fmt.Sprintf("trending:%d:%d", hours, limit)
	if cached, found := utils.CacheGet(cacheKey); found {
		if keywords, ok := cached.([]*model.TrendingKeyword); ok {
			return keywords, nil
		}
	}

	var keywords []*model.TrendingKeyword
	var err error
	if hours > 0 {
		err = r.db.Raw(`
			SELECT keyword, COUNT(*) as count, MAX(created_at) as last_searched_at
			FROM search_logs
			WHERE created_at > NOW() - INTERVAL '1 hour' * ?
			GROUP BY keyword
			ORDER BY count DESC
			LIMIT ?
		`, hours, limit).Scan(&keywords).Error
	} else {
		err = r.db.Table("trending_keywords").
			Select("keyword, count, last_searched_at").
			Order("count DESC").
			Limit(limit).
			Scan(&keywords).Error
	}
	if err != nil {
		return nil, err
	}

	// 2. 写缓存，热搜榜不需要实时
	utils.CacheSet(cacheKey, keywords, 10*time.Minute)

	return keywords, nil
}

// DeleteOldLogs 删除指定天数之前的原始搜索日志
func (r *SearchLogRepository) DeleteOldLogs(days int) (int64, error) {
	result := r.db.Where("created_at < NOW() - (? || ' days')::interval", days).
		Delete(&model.SearchLog{})
	return result.RowsAffected, result.Error
}

// DeleteOldKeywords 删除超过指定天数未被搜索的热搜关键词
func (r *SearchLogRepository) DeleteOldKeywords(days int) (int64, error) {
	result := r.db.Where("last_searched_at < NOW() - (? || ' days')::interval", days).
		Delete(&model.TrendingKeyword{})
	return result.RowsAffected, result.Error
}
