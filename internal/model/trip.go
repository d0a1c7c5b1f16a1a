package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// 季节（按出发月份的固定季度映射）
const (
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonAutumn = "Autumn"
	SeasonWinter = "Winter"
)

// 行程天数分类
const (
	DurationWeekend    = "weekend"
	DurationShortTrip  = "short trip"
	DurationLongBreak  = "long break"
	DurationDeepTravel = "deep travel"
)

// 行程状态（相对今天）
const (
	StatusUpcoming = "upcoming"
	StatusOngoing  = "ongoing"
	StatusEnded    = "ended"
)

// Trip 行程模型
type Trip struct {
	ID          int              `json:"id" db:"id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Area        string           `json:"area" db:"area" gorm:"index"`
	StartDate   time.Time        `json:"start_date" db:"start_date" gorm:"index"`
	EndDate     time.Time        `json:"end_date" db:"end_date"`
	UserID      string           `json:"user_id" db:"user_id"`
	Tags        pq.StringArray   `json:"tags" db:"tags" gorm:"type:text[]"`
	Embedding   *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector(768)"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`

	// 查询时计算的衍生字段，不落库
	RelevanceScore float64 `json:"relevance_score,omitempty" gorm:"->"`
	DurationDays   int     `json:"duration_days" gorm:"-"`
	Season         string  `json:"season" gorm:"-"`
	DurationType   string  `json:"duration_type" gorm:"-"`
	Status         string  `json:"status" gorm:"-"`
}

// TripDetail 行程站点（某一天的一个地点安排），按 (date, start_time) 升序展示
type TripDetail struct {
	ID          int       `json:"id" db:"id"`
	TripID      int       `json:"trip_id" db:"trip_id" gorm:"index"`
	Location    string    `json:"location" db:"location"`
	Date        time.Time `json:"date" db:"date"`
	StartTime   string    `json:"start_time" db:"start_time"`
	EndTime     string    `json:"end_time" db:"end_time"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RankingFilters 排行榜可选过滤条件，两者可叠加
type RankingFilters struct {
	DurationType string
	Season       string
}

// DurationDays 行程天数，首尾两天都算（start == end 为 1 天）
func DurationDays(start, end time.Time) int {
	days := int(dateOnly(end).Sub(dateOnly(start)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// SeasonOf 按出发月份映射季节：3-5 春、6-8 夏、9-11 秋、其余为冬
func SeasonOf(month time.Month) string {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// DurationTypeOf 按天数分桶
func DurationTypeOf(days int) string {
	switch {
	case days <= 2:
		return DurationWeekend
	case days <= 5:
		return DurationShortTrip
	case days <= 10:
		return DurationLongBreak
	default:
		return DurationDeepTravel
	}
}

// StatusOf 按今天相对行程起止日期判断状态
func StatusOf(now, start, end time.Time) string {
	today := dateOnly(now)
	switch {
	case today.Before(dateOnly(start)):
		return StatusUpcoming
	case today.After(dateOnly(end)):
		return StatusEnded
	default:
		return StatusOngoing
	}
}

// Decorate 填充衍生字段
func (t *Trip) Decorate(now time.Time) {
	t.DurationDays = DurationDays(t.StartDate, t.EndDate)
	t.Season = SeasonOf(t.StartDate.Month())
	t.DurationType = DurationTypeOf(t.DurationDays)
	t.Status = StatusOf(now, t.StartDate, t.EndDate)
}

// DecorateTrips 批量填充衍生字段
func DecorateTrips(trips []Trip, now time.Time) {
	for i := range trips {
		trips[i].Decorate(now)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
