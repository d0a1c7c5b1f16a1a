package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/config"
	"github.com/user/tourhub/internal/handler"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/router"
	"github.com/user/tourhub/internal/service"
	"github.com/user/tourhub/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitCache()
	os.Exit(m.Run())
}

// fakeBackend 统一充当搜索、排行、详情和推荐的存储
type fakeBackend struct {
	trips map[int]*model.Trip
}

func (f *fakeBackend) FindByID(id int) (*model.Trip, error) {
	return f.trips[id], nil
}

func (f *fakeBackend) SearchExact(keyword string, limit, offset int) ([]model.Trip, error) {
	var out []model.Trip
	for _, trip := range f.trips {
		if trip.Title == keyword || trip.Area == keyword {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeBackend) CountExact(keyword string) (int64, error) {
	trips, _ := f.SearchExact(keyword, 0, 0)
	return int64(len(trips)), nil
}

func (f *fakeBackend) SearchFuzzy(cleaned, pattern string, limit, offset int) ([]model.Trip, error) {
	return nil, nil
}

func (f *fakeBackend) CountFuzzy(cleaned, pattern string) (int64, error) {
	return 0, nil
}

func (f *fakeBackend) SearchToken(tokens []string, limit, offset int) ([]model.Trip, error) {
	return nil, nil
}

func (f *fakeBackend) rankAll() []model.Trip {
	var out []model.Trip
	for _, trip := range f.trips {
		out = append(out, *trip)
	}
	return out
}

func (f *fakeBackend) RankByDate(_ model.RankingFilters, _ int) ([]model.Trip, error) {
	return f.rankAll(), nil
}

func (f *fakeBackend) RankByArea(_ model.RankingFilters, _ int) ([]model.Trip, error) {
	return f.rankAll(), nil
}

func (f *fakeBackend) RankByDuration(_ model.RankingFilters, _ int) ([]model.Trip, error) {
	return f.rankAll(), nil
}

func (f *fakeBackend) RankTrending(_ model.RankingFilters, _ int) ([]model.Trip, error) {
	return f.rankAll(), nil
}

func (f *fakeBackend) ListAreas() ([]string, error) {
	return []string{"東京"}, nil
}

func (f *fakeBackend) FindNearest(id, limit int) ([]model.Trip, error) {
	return nil, nil
}

func (f *fakeBackend) FindByAreaExcept(area string, exceptID, limit int) ([]model.Trip, error) {
	return nil, nil
}

type fakeStats struct {
	rows map[int]*model.TripStats
}

func (f *fakeStats) EnsureExists(tripID int) error {
	if _, ok := f.rows[tripID]; !ok {
		f.rows[tripID] = &model.TripStats{TripID: tripID}
	}
	return nil
}

func (f *fakeStats) Increment(tripID int, action string) (*model.TripStats, error) {
	stats := f.rows[tripID]
	if action == model.ActionView {
		stats.ViewCount++
	}
	copied := *stats
	return &copied, nil
}

func (f *fakeStats) SetPopularity(tripID int, score float64) error {
	f.rows[tripID].PopularityScore = score
	return nil
}

func (f *fakeStats) GetByTrip(tripID int) (*model.TripStats, error) {
	if stats, ok := f.rows[tripID]; ok {
		copied := *stats
		return &copied, nil
	}
	return nil, nil
}

type fakeShares struct{}

func (f *fakeShares) Create(share *model.Share) error { return nil }

type fakeFavorites struct {
	rows map[string]map[int]bool
}

func (f *fakeFavorites) Add(userID string, tripID int) (bool, error) {
	if f.rows[userID] == nil {
		f.rows[userID] = make(map[int]bool)
	}
	if f.rows[userID][tripID] {
		return false, nil
	}
	f.rows[userID][tripID] = true
	return true, nil
}

func (f *fakeFavorites) Remove(userID string, tripID int) (bool, error) {
	if !f.rows[userID][tripID] {
		return false, nil
	}
	delete(f.rows[userID], tripID)
	return true, nil
}

func (f *fakeFavorites) IsFavorited(userID string, tripID int) (bool, error) {
	return f.rows[userID][tripID], nil
}

func (f *fakeFavorites) ListByUser(userID string, limit int) ([]model.Favorite, error) {
	var out []model.Favorite
	for tripID := range f.rows[userID] {
		out = append(out, model.Favorite{UserID: userID, TripID: tripID})
	}
	return out, nil
}

func (f *fakeFavorites) CountByUser(userID string) (int64, error) {
	return int64(len(f.rows[userID])), nil
}

type fakeSearchLogs struct {
	mu       sync.Mutex
	keywords []string
}

func (f *fakeSearchLogs) Log(keyword string, userID *string, ipHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywords = append(f.keywords, keyword)
	return nil
}

func (f *fakeSearchLogs) GetTrending(hours, limit int) ([]*model.TrendingKeyword, error) {
	return []*model.TrendingKeyword{{Keyword: "東京", Count: 3}}, nil
}

type fakeDetails struct{}

func (f *fakeDetails) ListByTrip(tripID int) ([]model.TripDetail, error) {
	return []model.TripDetail{{TripID: tripID, Location: "上野公園"}}, nil
}

type fakeParticipants struct{}

func (f *fakeParticipants) ListByTrip(tripID int) ([]model.Participant, error) {
	return nil, nil
}

func newTestRouter() (*gin.Engine, *fakeFavorites) {
	backend := &fakeBackend{trips: map[int]*model.Trip{
		1: {
			ID:        1,
			Title:     "東京賞櫻之旅",
			Area:      "東京",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		},
	}}
	stats := &fakeStats{rows: make(map[int]*model.TripStats)}
	favorites := &fakeFavorites{rows: make(map[string]map[int]bool)}

	h := &handler.Handler{
		Config:     &config.Config{AppSecret: "test-secret", SiteName: "Tourhub", SiteUrl: "http://localhost:5006", JWTExpiry: time.Hour},
		Search:     service.NewSearchService(backend),
		Ranking:    service.NewRankingService(backend),
		Stats:      service.NewStatsService(backend, stats, &fakeShares{}),
		Favorites:  service.NewFavoriteService(backend, favorites),
		Trips:      service.NewTripService(backend, &fakeDetails{}, &fakeParticipants{}, stats),
		SearchLogs: &fakeSearchLogs{},
	}

	r := gin.New()
	router.RegisterRoutes(r, h)
	return r, favorites
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return w, payload
}

func TestSearchEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/search?keyword=東京", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if payload["success"] != true {
		t.Errorf("success = %v", payload["success"])
	}
	if payload["searchType"] != "exact" {
		t.Errorf("searchType = %v, want exact", payload["searchType"])
	}
	trips, ok := payload["trips"].([]interface{})
	if !ok || len(trips) != 1 {
		t.Errorf("trips = %v", payload["trips"])
	}
	if _, ok := payload["pagination"].(map[string]interface{}); !ok {
		t.Error("缺少 pagination")
	}
}

func TestSearchEndpointEmptyKeyword(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/search?keyword=", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if payload["success"] != false || payload["message"] == "" {
		t.Errorf("错误包裹不符: %v", payload)
	}
}

func TestSearchEndpointMethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodPut, "/search?keyword=東京", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if payload["success"] != false {
		t.Errorf("错误包裹不符: %v", payload)
	}
}

func TestRankingsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/rankings?type=bogus", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["ranking_type"] != "date" {
		t.Errorf("未知类型应回落 date: %v", payload["ranking_type"])
	}
	if payload["count"].(float64) != 1 {
		t.Errorf("count = %v", payload["count"])
	}
}

func TestTripDetailEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/trip-detail?id=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	trip := payload["trip"].(map[string]interface{})
	if trip["duration_days"].(float64) != 4 {
		t.Errorf("duration_days = %v", trip["duration_days"])
	}
	if trip["season"] != model.SeasonSpring {
		t.Errorf("season = %v", trip["season"])
	}
	details := payload["details"].([]interface{})
	if len(details) != 1 {
		t.Errorf("details = %v", details)
	}
}

func TestTripDetailEndpointErrors(t *testing.T) {
	r, _ := newTestRouter()

	if w, _ := doRequest(t, r, http.MethodGet, "/trip-detail?id=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("非数字 ID status = %d, want 400", w.Code)
	}
	if w, _ := doRequest(t, r, http.MethodGet, "/trip-detail?id=99", nil); w.Code != http.StatusNotFound {
		t.Errorf("不存在行程 status = %d, want 404", w.Code)
	}
}

func TestFavoriteEndpoints(t *testing.T) {
	r, _ := newTestRouter()
	body := map[string]interface{}{"user_id": "U1", "trip_id": 1}

	if w, _ := doRequest(t, r, http.MethodPost, "/favorites", body); w.Code != http.StatusCreated {
		t.Fatalf("首次收藏 status = %d, want 201", w.Code)
	}
	if w, _ := doRequest(t, r, http.MethodPost, "/favorites", body); w.Code != http.StatusConflict {
		t.Errorf("重复收藏 status = %d, want 409", w.Code)
	}

	missing := map[string]interface{}{"user_id": "U1", "trip_id": 99}
	if w, _ := doRequest(t, r, http.MethodPost, "/favorites", missing); w.Code != http.StatusNotFound {
		t.Errorf("收藏不存在的行程 status = %d, want 404", w.Code)
	}

	w, payload := doRequest(t, r, http.MethodGet, "/favorites?user_id=U1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("收藏列表 status = %d", w.Code)
	}
	if payload["total"].(float64) != 1 {
		t.Errorf("total = %v", payload["total"])
	}

	if w, _ := doRequest(t, r, http.MethodDelete, "/favorites?user_id=U1&trip_id=1", nil); w.Code != http.StatusOK {
		t.Errorf("取消收藏 status = %d", w.Code)
	}
	if w, _ := doRequest(t, r, http.MethodDelete, "/favorites?user_id=U1&trip_id=1", nil); w.Code != http.StatusNotFound {
		t.Errorf("重复取消 status = %d, want 404", w.Code)
	}
}

func TestFavoriteListRequiresUserID(t *testing.T) {
	r, _ := newTestRouter()

	if w, _ := doRequest(t, r, http.MethodGet, "/favorites", nil); w.Code != http.StatusBadRequest {
		t.Errorf("缺 user_id status = %d, want 400", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodPost, "/stats", map[string]interface{}{
		"trip_id": 1,
		"action":  "view",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	stats := payload["stats"].(map[string]interface{})
	if stats["view_count"].(float64) != 1 {
		t.Errorf("view_count = %v", stats["view_count"])
	}

	if w, _ := doRequest(t, r, http.MethodPost, "/stats", map[string]interface{}{
		"trip_id": 1, "action": "like",
	}); w.Code != http.StatusBadRequest {
		t.Errorf("无效动作 status = %d, want 400", w.Code)
	}

	if w, _ := doRequest(t, r, http.MethodPost, "/stats", map[string]interface{}{
		"trip_id": 99, "action": "view",
	}); w.Code != http.StatusNotFound {
		t.Errorf("不存在行程 status = %d, want 404", w.Code)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	utils.CacheDelete("filters:areas")

	w, payload := doRequest(t, r, http.MethodGet, "/filters", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	areas := payload["areas"].([]interface{})
	if len(areas) != 1 || areas[0] != "東京" {
		t.Errorf("areas = %v", areas)
	}
	if len(payload["seasons"].([]interface{})) != 4 {
		t.Errorf("seasons = %v", payload["seasons"])
	}
	if len(payload["duration_types"].([]interface{})) != 4 {
		t.Errorf("duration_types = %v", payload["duration_types"])
	}
}

func TestTrendsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/api/trends", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	keywords := payload["keywords"].([]interface{})
	if len(keywords) != 1 {
		t.Errorf("keywords = %v", keywords)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter()

	if w, _ := doRequest(t, r, http.MethodPost, "/admin/cache/clean", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("未登录访问后台 status = %d, want 401", w.Code)
	}
}

func TestUnknownRouteJSON(t *testing.T) {
	r, _ := newTestRouter()

	w, payload := doRequest(t, r, http.MethodGet, "/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if payload["success"] != false {
		t.Errorf("错误包裹不符: %v", payload)
	}
}
