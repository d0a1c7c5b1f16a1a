package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/middleware"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/service"
	"github.com/user/tourhub/internal/utils"
)

// SearchTrips 搜索行程
// GET /search?keyword=&limit=&offset=
func (h *Handler) SearchTrips(c *gin.Context) {
	keyword := c.Query("keyword")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.Search.Search(c.Request.Context(), keyword, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrEmptyKeyword) {
			utils.Fail(c, http.StatusBadRequest, "搜索关键词不能为空")
			return
		}
		utils.FailErr(c, http.StatusInternalServerError, "搜索失败", err)
		return
	}

	// 有命中才记日志，IP 哈希后存储
	if len(result.Trips) > 0 {
		var userID *string
		if user := middleware.GetSessionUser(c); user != nil {
			userID = &user.UserID
		}
		ipHash := utils.HashIP(c.ClientIP())
		go func() {
			if err := h.SearchLogs.Log(keyword, userID, ipHash); err != nil {
				log.Printf("[API] 记录搜索日志失败: %v", err)
			}
		}()
	}

	utils.OK(c, gin.H{
		"trips":      result.Trips,
		"total":      result.Total,
		"searchType": result.SearchType,
		"pagination": result.Pagination,
	})
}

// Rankings 行程排行榜
// GET /rankings?type=&duration_type=&season=&limit=
func (h *Handler) Rankings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters := model.RankingFilters{
		DurationType: c.Query("duration_type"),
		Season:       c.Query("season"),
	}

	result, err := h.Ranking.Rankings(c.Query("type"), filters, limit)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "获取排行榜失败", err)
		return
	}

	utils.OK(c, gin.H{
		"data":         result.Trips,
		"ranking_type": result.RankingType,
		"count":        len(result.Trips),
	})
}

// TripDetail 行程详情
// GET /trip-detail?id=
func (h *Handler) TripDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		utils.Fail(c, http.StatusBadRequest, "无效的行程 ID")
		return
	}

	result, err := h.Trips.Detail(id)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			utils.Fail(c, http.StatusNotFound, "行程不存在")
			return
		}
		utils.FailErr(c, http.StatusInternalServerError, "获取行程详情失败", err)
		return
	}

	utils.OK(c, gin.H{
		"trip":         result.Trip,
		"details":      result.Details,
		"participants": result.Participants,
		"stats":        result.Stats,
	})
}

// ListFavorites 用户收藏列表
// GET /favorites?user_id=&limit=
func (h *Handler) ListFavorites(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.Fail(c, http.StatusBadRequest, "缺少 user_id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	favorites, total, err := h.Favorites.List(userID, limit)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "获取收藏列表失败", err)
		return
	}

	utils.OK(c, gin.H{
		"favorites": favorites,
		"total":     total,
	})
}

type favoriteRequest struct {
	UserID string `json:"user_id" binding:"required"`
	TripID int    `json:"trip_id" binding:"required,gt=0"`
}

// AddFavorite 收藏行程
// POST /favorites
func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailErr(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	if err := h.Favorites.Add(req.UserID, req.TripID); err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			utils.Fail(c, http.StatusNotFound, "行程不存在")
		case errors.Is(err, service.ErrAlreadyFavorited):
			utils.Fail(c, http.StatusConflict, "已收藏过该行程")
		default:
			utils.FailErr(c, http.StatusInternalServerError, "收藏失败", err)
		}
		return
	}

	utils.Created(c, gin.H{"message": "收藏成功"})
}

// RemoveFavorite 取消收藏
// DELETE /favorites?user_id=&trip_id=
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID := c.Query("user_id")
	tripID, err := strconv.Atoi(c.Query("trip_id"))
	if userID == "" || err != nil || tripID <= 0 {
		utils.Fail(c, http.StatusBadRequest, "缺少 user_id 或 trip_id")
		return
	}

	if err := h.Favorites.Remove(userID, tripID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			utils.Fail(c, http.StatusNotFound, "收藏不存在")
			return
		}
		utils.FailErr(c, http.StatusInternalServerError, "取消收藏失败", err)
		return
	}

	utils.OK(c, gin.H{"message": "已取消收藏"})
}

type statsRequest struct {
	TripID   int     `json:"trip_id" binding:"required,gt=0"`
	Action   string  `json:"action" binding:"required"`
	UserID   *string `json:"user_id"`
	Platform string  `json:"platform"`
}

// RecordStats 上报互动统计
// POST /stats
func (h *Handler) RecordStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailErr(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	stats, err := h.Stats.Record(req.TripID, req.Action, req.UserID, req.Platform)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			utils.Fail(c, http.StatusBadRequest, "无效的统计动作")
		case errors.Is(err, service.ErrTripNotFound):
			utils.Fail(c, http.StatusNotFound, "行程不存在")
		default:
			utils.FailErr(c, http.StatusInternalServerError, "统计上报失败", err)
		}
		return
	}

	utils.OK(c, gin.H{"stats": stats})
}

// Filters 筛选器可选值
// GET /filters
func (h *Handler) Filters(c *gin.Context) {
	options, err := h.Trips.Filters()
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "获取筛选器失败", err)
		return
	}

	utils.OK(c, gin.H{
		"areas":          options.Areas,
		"seasons":        options.Seasons,
		"duration_types": options.DurationTypes,
	})
}

// SimilarTrips 相似行程推荐
// GET /api/trips/similar?id=&limit=
func (h *Handler) SimilarTrips(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		utils.Fail(c, http.StatusBadRequest, "无效的行程 ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	trips, err := h.Trips.Similar(id, limit)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			utils.Fail(c, http.StatusNotFound, "行程不存在")
			return
		}
		utils.FailErr(c, http.StatusInternalServerError, "获取相似行程失败", err)
		return
	}

	utils.OK(c, gin.H{"trips": trips})
}

// Trends 热搜关键词
// GET /api/trends?hours=&limit=
func (h *Handler) Trends(c *gin.Context) {
	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	keywords, err := h.SearchLogs.GetTrending(hours, limit)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "获取热搜失败", err)
		return
	}
	if keywords == nil {
		keywords = []*model.TrendingKeyword{}
	}

	utils.OK(c, gin.H{"keywords": keywords})
}
