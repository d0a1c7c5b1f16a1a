package service

import (
	"testing"

	"github.com/user/tourhub/internal/model"
)

type fakeRanker struct {
	dateCalls     int
	areaCalls     int
	durationCalls int
	trendingCalls int
	lastFilters   model.RankingFilters
	lastLimit     int
	trips         []model.Trip
}

func (f *fakeRanker) RankByDate(filters model.RankingFilters, limit int) ([]model.Trip, error) {
	f.dateCalls++
	f.lastFilters, f.lastLimit = filters, limit
	return f.trips, nil
}

func (f *fakeRanker) RankByArea(filters model.RankingFilters, limit int) ([]model.Trip, error) {
	f.areaCalls++
	f.lastFilters, f.lastLimit = filters, limit
	return f.trips, nil
}

func (f *fakeRanker) RankByDuration(filters model.RankingFilters, limit int) ([]model.Trip, error) {
	f.durationCalls++
	f.lastFilters, f.lastLimit = filters, limit
	return f.trips, nil
}

func (f *fakeRanker) RankTrending(filters model.RankingFilters, limit int) ([]model.Trip, error) {
	f.trendingCalls++
	f.lastFilters, f.lastLimit = filters, limit
	return f.trips, nil
}

func TestRankingsDispatch(t *testing.T) {
	tests := []struct {
		rankingType string
		wantType    string
	}{
		{"date", RankingTypeDate},
		{"area", RankingTypeArea},
		{"duration", RankingTypeDuration},
		{"season", RankingTypeSeason},
		{"trending", RankingTypeTrending},
		{"bogus", RankingTypeDate},
		{"", RankingTypeDate},
	}
	for _, tt := range tests {
		t.Run("type="+tt.rankingType, func(t *testing.T) {
			store := &fakeRanker{trips: sampleTrips(3)}
			svc := NewRankingService(store)

			result, err := svc.Rankings(tt.rankingType, model.RankingFilters{}, 10)
			if err != nil {
				t.Fatalf("Rankings() err = %v", err)
			}
			if result.RankingType != tt.wantType {
				t.Errorf("RankingType = %q, want %q", result.RankingType, tt.wantType)
			}
		})
	}
}

func TestRankingsUnknownTypeUsesDate(t *testing.T) {
	store := &fakeRanker{trips: sampleTrips(1)}
	svc := NewRankingService(store)

	if _, err := svc.Rankings("bogus", model.RankingFilters{}, 10); err != nil {
		t.Fatalf("Rankings() err = %v", err)
	}
	if store.dateCalls != 1 || store.areaCalls+store.durationCalls+store.trendingCalls != 0 {
		t.Errorf("未知类型应走 date 榜: %+v", store)
	}
}

func TestRankingsPassesFilters(t *testing.T) {
	store := &fakeRanker{trips: sampleTrips(1)}
	svc := NewRankingService(store)

	filters := model.RankingFilters{DurationType: model.DurationWeekend, Season: model.SeasonSummer}
	if _, err := svc.Rankings("trending", filters, 5); err != nil {
		t.Fatalf("Rankings() err = %v", err)
	}
	if store.trendingCalls != 1 {
		t.Errorf("trendingCalls = %d, want 1", store.trendingCalls)
	}
	if store.lastFilters != filters || store.lastLimit != 5 {
		t.Errorf("过滤条件未透传: %+v limit=%d", store.lastFilters, store.lastLimit)
	}
}

func TestRankingsDecoratesAndClamps(t *testing.T) {
	store := &fakeRanker{trips: sampleTrips(2)}
	svc := NewRankingService(store)

	result, err := svc.Rankings("date", model.RankingFilters{}, 0)
	if err != nil {
		t.Fatalf("Rankings() err = %v", err)
	}
	if store.lastLimit != defaultRankingLimit {
		t.Errorf("limit = %d, want %d", store.lastLimit, defaultRankingLimit)
	}
	for _, trip := range result.Trips {
		if trip.DurationDays == 0 || trip.Season == "" || trip.Status == "" {
			t.Errorf("衍生字段未填充: %+v", trip)
		}
	}
}

func TestRankingsCaches(t *testing.T) {
	store := &fakeRanker{trips: sampleTrips(1)}
	svc := NewRankingService(store)

	for i := 0; i < 3; i++ {
		if _, err := svc.Rankings("area", model.RankingFilters{}, 10); err != nil {
			t.Fatalf("Rankings() err = %v", err)
		}
	}
	if store.areaCalls != 1 {
		t.Errorf("相同榜单应命中缓存, areaCalls = %d", store.areaCalls)
	}
}

func TestRankingsEmptyResult(t *testing.T) {
	svc := NewRankingService(&fakeRanker{})

	result, err := svc.Rankings("date", model.RankingFilters{}, 10)
	if err != nil {
		t.Fatalf("Rankings() err = %v", err)
	}
	if result.Trips == nil {
		t.Error("空榜单应是空切片")
	}
}
