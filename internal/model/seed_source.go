package model

import (
	"time"
)

// SeedSource 行程站点种子来源：按地区配置的景点列表页和 CSS 选择器
type SeedSource struct {
	ID        int       `json:"id" db:"id"`
	Area      string    `json:"area" db:"area" gorm:"index"`
	URL       string    `json:"url" db:"url"`
	Selector  string    `json:"selector" db:"selector"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
