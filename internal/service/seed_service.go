package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

// ErrDetailsExist 行程已有站点，不重复填充
var ErrDetailsExist = errors.New("行程已有站点安排")

// 每天的站点时段，按顺序轮流使用
var seedTimeSlots = [][2]string{
	{"09:00", "11:00"},
	{"11:30", "13:00"},
	{"14:00", "16:00"},
	{"16:30", "18:00"},
}

const maxSeedSpots = 20

// SeedSourceStore 种子来源的读取能力
type SeedSourceStore interface {
	FindByArea(area string) (*model.SeedSource, error)
}

// DetailWriter 站点的写入能力
type DetailWriter interface {
	CountByTrip(tripID int) (int64, error)
	BatchCreate(details []model.TripDetail) error
}

// SeedService 给空行程填充站点安排：优先抓取该地区配置的景点列表页，
// 抓不到时退回内置模板
type SeedService struct {
	trips   TripFinder
	details DetailWriter
	sources SeedSourceStore
	client  *utils.HTTPClient
}

// NewSeedService 创建种子填充服务
func NewSeedService(trips TripFinder, details DetailWriter, sources SeedSourceStore) *SeedService {
	return &SeedService{
		trips:   trips,
		details: details,
		sources: sources,
		client:  utils.NewHTTPClient(15 * time.Second),
	}
}

// SeedDetails 为行程生成站点并落库，返回生成的站点数。
// 站点按天平均分配，每天最多 4 个时段
func (s *SeedService) SeedDetails(tripID int) (int, error) {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		return 0, err
	}
	if trip == nil {
		return 0, ErrTripNotFound
	}

	existing, err := s.details.CountByTrip(tripID)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, ErrDetailsExist
	}

	spots := s.fetchSpots(trip.Area)
	if len(spots) == 0 {
		spots = builtinSpots(trip.Area)
	}

	days := model.DurationDays(trip.StartDate, trip.EndDate)
	perDay := len(seedTimeSlots)
	if len(spots) > days*perDay {
		spots = spots[:days*perDay]
	}

	details := make([]model.TripDetail, 0, len(spots))
	for i, spot := range spots {
		day := i / perDay
		slot := seedTimeSlots[i%perDay]
		details = append(details, model.TripDetail{
			TripID:      tripID,
			Location:    spot,
			Date:        trip.StartDate.AddDate(0, 0, day),
			StartTime:   slot[0],
			EndTime:     slot[1],
			Description: fmt.Sprintf("%s 第 %d 天行程", trip.Area, day+1),
		})
	}

	if err := s.details.BatchCreate(details); err != nil {
		return 0, err
	}
	return len(details), nil
}

// fetchSpots 从该地区配置的来源页抓取景点名，没有来源或抓取失败返回空
func (s *SeedService) fetchSpots(area string) []string {
	source, err := s.sources.FindByArea(area)
	if err != nil {
		log.Printf("[SeedService] 查询种子来源失败 area=%s: %v", area, err)
		return nil
	}
	if source == nil {
		return nil
	}

	body, err := s.client.GetBody(source.URL)
	if err != nil {
		log.Printf("[SeedService] 抓取失败 url=%s: %v", source.URL, err)
		return nil
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		log.Printf("[SeedService] 解析页面失败 url=%s: %v", source.URL, err)
		return nil
	}

	seen := make(map[string]bool)
	var spots []string
	doc.Find(source.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name := strings.TrimSpace(sel.Text())
		if name != "" && !seen[name] {
			seen[name] = true
			spots = append(spots, name)
		}
		return len(spots) < maxSeedSpots
	})

	log.Printf("[SeedService] 抓取到 %d 个景点 area=%s", len(spots), area)
	return spots
}

// builtinSpots 内置兜底模板，保证没有配置来源的地区也能生成行程
func builtinSpots(area string) []string {
	templates := []string{
		"%s车站周边散步",
		"%s老街",
		"%s地标观景台",
		"%s历史博物馆",
		"%s中央公园",
		"%s美食市场",
		"%s滨水步道",
		"%s手作体验馆",
	}
	spots := make([]string, 0, len(templates))
	for _, tpl := range templates {
		spots = append(spots, fmt.Sprintf(tpl, area))
	}
	return spots
}
