package model

import (
	"time"
)

// Favorite 收藏，(user_id, trip_id) 联合唯一
type Favorite struct {
	ID        int       `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TripID    int       `json:"trip_id" db:"trip_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Trip      *Trip     `json:"trip,omitempty"` // 关联查询时填充
}

// Share 分享记录，未登录用户的 user_id 为空
type Share struct {
	ID        int       `json:"id" db:"id"`
	UserID    *string   `json:"user_id" db:"user_id"`
	TripID    int       `json:"trip_id" db:"trip_id"`
	Platform  string    `json:"platform" db:"platform"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Participant 行程参与者
type Participant struct {
	ID          int       `json:"id" db:"id"`
	TripID      int       `json:"trip_id" db:"trip_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Role        string    `json:"role" db:"role"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at"`
}

func (Participant) TableName() string {
	return "trip_participants"
}

// SearchLog 搜索日志
type SearchLog struct {
	ID        int       `json:"id" db:"id"`
	Keyword   string    `json:"keyword" db:"keyword"`
	UserID    *string   `json:"user_id" db:"user_id"`
	IPHash    string    `json:"ip_hash" db:"ip_hash"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
}

// TrendingKeyword 热搜关键词
type TrendingKeyword struct {
	Keyword        string    `json:"keyword" db:"keyword" gorm:"primaryKey"`
	Count          int       `json:"count" db:"count"`
	LastSearchedAt time.Time `json:"last_searched_at" db:"last_searched_at"`
}
