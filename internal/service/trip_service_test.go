package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

func TestMain(m *testing.M) {
	utils.InitCache()
	os.Exit(m.Run())
}

type fakeTripStore struct {
	fakeTripFinder
	areas        []string
	areaCalls    int
	nearest      []model.Trip
	nearestCalls int
	sameArea     []model.Trip
	sameCalls    int
}

func (f *fakeTripStore) ListAreas() ([]string, error) {
	f.areaCalls++
	return f.areas, nil
}

func (f *fakeTripStore) FindNearest(id, limit int) ([]model.Trip, error) {
	f.nearestCalls++
	return f.nearest, nil
}

func (f *fakeTripStore) FindByAreaExcept(area string, exceptID, limit int) ([]model.Trip, error) {
	f.sameCalls++
	return f.sameArea, nil
}

type fakeDetailStore struct {
	details []model.TripDetail
}

func (f *fakeDetailStore) ListByTrip(tripID int) ([]model.TripDetail, error) {
	return f.details, nil
}

type fakeParticipantStore struct {
	participants []model.Participant
}

func (f *fakeParticipantStore) ListByTrip(tripID int) ([]model.Participant, error) {
	return f.participants, nil
}

func tripFixture() (*TripService, *fakeTripStore, *fakeStatsStore) {
	store := &fakeTripStore{
		fakeTripFinder: fakeTripFinder{trips: map[int]*model.Trip{
			1: {
				ID:        1,
				Title:     "東京賞櫻之旅",
				Area:      "東京",
				StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
			},
		}},
		areas: []string{"京都", "北海道", "東京"},
	}
	details := &fakeDetailStore{details: []model.TripDetail{
		{TripID: 1, Location: "上野公園", StartTime: "09:00"},
		{TripID: 1, Location: "淺草寺", StartTime: "14:00"},
	}}
	participants := &fakeParticipantStore{participants: []model.Participant{
		{TripID: 1, UserID: "U1", DisplayName: "小林"},
	}}
	stats := newFakeStatsStore()

	return NewTripService(store, details, participants, stats), store, stats
}

func TestTripDetailNotFound(t *testing.T) {
	svc, _, _ := tripFixture()

	if _, err := svc.Detail(99); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("err = %v, want ErrTripNotFound", err)
	}
}

func TestTripDetailAggregates(t *testing.T) {
	svc, _, stats := tripFixture()
	_ = stats.EnsureExists(1)
	if _, err := stats.Increment(1, model.ActionView); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Detail(1)
	if err != nil {
		t.Fatalf("Detail() err = %v", err)
	}
	if result.Trip.DurationDays != 4 || result.Trip.Season != model.SeasonSpring {
		t.Errorf("衍生字段未填充: %+v", result.Trip)
	}
	if len(result.Details) != 2 || result.Details[0].Location != "上野公園" {
		t.Errorf("站点不符: %+v", result.Details)
	}
	if len(result.Participants) != 1 {
		t.Errorf("参与者不符: %+v", result.Participants)
	}
	if result.Stats == nil || result.Stats.ViewCount != 1 {
		t.Errorf("统计不符: %+v", result.Stats)
	}
}

func TestTripDetailWithoutStats(t *testing.T) {
	svc, _, _ := tripFixture()

	result, err := svc.Detail(1)
	if err != nil {
		t.Fatalf("Detail() err = %v", err)
	}
	if result.Stats != nil {
		t.Errorf("统计行未建时应为 nil: %+v", result.Stats)
	}
}

func TestFiltersCachesAreas(t *testing.T) {
	svc, store, _ := tripFixture()
	utils.CacheDelete("filters:areas")

	for i := 0; i < 3; i++ {
		options, err := svc.Filters()
		if err != nil {
			t.Fatalf("Filters() err = %v", err)
		}
		if len(options.Areas) != 3 {
			t.Errorf("Areas = %v", options.Areas)
		}
		if len(options.Seasons) != 4 || len(options.DurationTypes) != 4 {
			t.Errorf("固定枚举不符: %+v", options)
		}
	}
	if store.areaCalls != 1 {
		t.Errorf("地区列表应命中缓存, areaCalls = %d", store.areaCalls)
	}
}

func TestSimilarPrefersEmbedding(t *testing.T) {
	svc, store, _ := tripFixture()
	vec := pgvector.NewVector(make([]float32, 3))
	store.trips[1].Embedding = &vec
	store.nearest = sampleTrips(2)

	trips, err := svc.Similar(1, 6)
	if err != nil {
		t.Fatalf("Similar() err = %v", err)
	}
	if store.nearestCalls != 1 || store.sameCalls != 0 {
		t.Errorf("应走向量检索: nearest=%d area=%d", store.nearestCalls, store.sameCalls)
	}
	if len(trips) != 2 || trips[0].Season == "" {
		t.Errorf("结果不符: %+v", trips)
	}
}

func TestSimilarFallsBackToArea(t *testing.T) {
	svc, store, _ := tripFixture()
	store.sameArea = sampleTrips(1)

	trips, err := svc.Similar(1, 6)
	if err != nil {
		t.Fatalf("Similar() err = %v", err)
	}
	if store.nearestCalls != 0 || store.sameCalls != 1 {
		t.Errorf("无嵌入应退回同地区: nearest=%d area=%d", store.nearestCalls, store.sameCalls)
	}
	if len(trips) != 1 {
		t.Errorf("结果不符: %+v", trips)
	}
}

func TestSimilarTripNotFound(t *testing.T) {
	svc, _, _ := tripFixture()

	if _, err := svc.Similar(99, 6); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("err = %v, want ErrTripNotFound", err)
	}
}
