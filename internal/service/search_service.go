package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
	"golang.org/x/sync/singleflight"
)

// ErrEmptyKeyword 空关键词是参数错误，不是空结果
var ErrEmptyKeyword = errors.New("搜索关键词不能为空")

// 搜索档位，严格按序尝试，拿到非空结果即停
const (
	SearchTypeExact = "exact"
	SearchTypeFuzzy = "fuzzy"
	SearchTypeToken = "token"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// TripSearcher 搜索服务所需的行程存储能力
type TripSearcher interface {
	SearchExact(keyword string, limit, offset int) ([]model.Trip, error)
	CountExact(keyword string) (int64, error)
	SearchFuzzy(cleaned, pattern string, limit, offset int) ([]model.Trip, error)
	CountFuzzy(cleaned, pattern string) (int64, error)
	SearchToken(tokens []string, limit, offset int) ([]model.Trip, error)
}

// Pagination 分页信息
type Pagination struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"hasMore"`
}

// SearchResult 搜索结果
type SearchResult struct {
	Trips      []model.Trip `json:"trips"`
	SearchType string       `json:"searchType"`
	Total      int64        `json:"total"`
	Pagination Pagination   `json:"pagination"`
}

// SearchService 三档递进搜索：精确 → 模糊 → 分词
type SearchService struct {
	trips TripSearcher
	cache *utils.SearchCache[SearchResult]
	sf    singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(trips TripSearcher) *SearchService {
	return &SearchService{
		trips: trips,
		cache: utils.NewSearchCache[SearchResult](1000, 5*time.Minute),
	}
}

// Search 执行搜索。limit 收敛到 [1,100]，offset 收敛到非负。
// 单档查询失败只记日志并视为该档为空，继续降级；三档全部失败才返回错误
func (s *SearchService) Search(ctx context.Context, keyword string, limit, offset int) (*SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	cacheKey := fmt.Sprintf("search:%s:%d:%d", keyword, limit, offset)
	if cached, found := s.cache.Get(cacheKey); found {
		return &cached, nil
	}

	// singleflight 避免并发请求同一个词
	val, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.doSearch(keyword, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	result := val.(*SearchResult)
	s.cache.Set(cacheKey, *result)
	return result, nil
}

func (s *SearchService) doSearch(keyword string, limit, offset int) (*SearchResult, error) {
	var tierErrs []error

	// 档位一：精确匹配，带加权相关度
	trips, err := s.trips.SearchExact(keyword, limit, offset)
	if err != nil {
		log.Printf("[SearchService] 精确搜索失败: %v", err)
		tierErrs = append(tierErrs, err)
		trips = nil
	}
	if len(trips) > 0 {
		total, err := s.trips.CountExact(keyword)
		if err != nil {
			log.Printf("[SearchService] 精确搜索计数失败: %v", err)
			total = int64(offset + len(trips))
		}
		return s.newResult(trips, SearchTypeExact, total, limit, offset, true), nil
	}

	// 档位二：去掉空白标点后的子串匹配 + 字符按序穿插匹配
	cleaned := CleanKeyword(keyword)
	if cleaned != "" {
		pattern := InterleavedPattern(cleaned)
		trips, err = s.trips.SearchFuzzy(cleaned, pattern, limit, offset)
		if err != nil {
			log.Printf("[SearchService] 模糊搜索失败: %v", err)
			tierErrs = append(tierErrs, err)
			trips = nil
		}
		if len(trips) > 0 {
			total, err := s.trips.CountFuzzy(cleaned, pattern)
			if err != nil {
				log.Printf("[SearchService] 模糊搜索计数失败: %v", err)
				total = int64(offset + len(trips))
			}
			return s.newResult(trips, SearchTypeFuzzy, total, limit, offset, true), nil
		}
	}

	// 档位三：分词后 OR 匹配，任一 token 命中即算
	tokens := Tokenize(keyword)
	trips, err = s.trips.SearchToken(tokens, limit, offset)
	if err != nil {
		log.Printf("[SearchService] 分词搜索失败: %v", err)
		tierErrs = append(tierErrs, err)
		trips = nil
		if len(tierErrs) == 3 {
			return nil, fmt.Errorf("搜索全部档位失败: %w", err)
		}
	}

	// 该档位没有真实总数，只能以本页行数充当
	return s.newResult(trips, SearchTypeToken, int64(len(trips)), limit, offset, false), nil
}

// newResult 组装结果并填充衍生字段。trueTotal 为假时（分词档）
// hasMore 只能用"本页是否填满"近似
func (s *SearchService) newResult(trips []model.Trip, searchType string, total int64, limit, offset int, trueTotal bool) *SearchResult {
	if trips == nil {
		trips = []model.Trip{}
	}
	model.DecorateTrips(trips, time.Now())

	hasMore := len(trips) == limit
	if trueTotal {
		hasMore = int64(offset+limit) < total
	}

	return &SearchResult{
		Trips:      trips,
		SearchType: searchType,
		Total:      total,
		Pagination: Pagination{
			Limit:      limit,
			Offset:     offset,
			Page:       offset/limit + 1,
			PageSize:   limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
			HasMore:    hasMore,
		},
	}
}
