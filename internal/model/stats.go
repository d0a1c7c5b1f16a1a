package model

import (
	"time"
)

// 统计动作
const (
	ActionView           = "view"
	ActionFavoriteAdd    = "favorite_add"
	ActionFavoriteRemove = "favorite_remove"
	ActionShare          = "share"
)

// TripStats 行程统计，每个行程一行，首次动作时惰性创建
type TripStats struct {
	TripID          int       `json:"trip_id" db:"trip_id" gorm:"primaryKey"`
	FavoriteCount   int       `json:"favorite_count" db:"favorite_count"`
	ShareCount      int       `json:"share_count" db:"share_count"`
	ViewCount       int       `json:"view_count" db:"view_count"`
	PopularityScore float64   `json:"popularity_score" db:"popularity_score"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (TripStats) TableName() string {
	return "trip_stats"
}

// PopularityScore 热度分：收藏权重最高、浏览最低，封顶 5 分
// score = min(5, ((favorites*3 + shares*2 + views*0.1) / 1000) * 5)
func PopularityScore(favorites, shares, views int) float64 {
	score := (float64(favorites)*3 + float64(shares)*2 + float64(views)*0.1) / 1000 * 5
	if score > 5 {
		return 5
	}
	return score
}
