package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/middleware"
	"github.com/user/tourhub/internal/service"
	"github.com/user/tourhub/internal/utils"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 后台登录，签发 JWT
// POST /admin/login
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailErr(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	user, err := h.Repos.AdminUser.FindByEmail(req.Email)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "登录失败", err)
		return
	}
	if user == nil || !h.Repos.AdminUser.CheckPassword(user, req.Password) {
		utils.Fail(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "签发 Token 失败", err)
		return
	}

	c.SetCookie("admin_token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// SeedTripDetails 给空行程填充站点安排
// POST /admin/trips/:id/seed-details
func (h *Handler) SeedTripDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Fail(c, http.StatusBadRequest, "无效的行程 ID")
		return
	}

	created, err := h.Seeder.SeedDetails(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			utils.Fail(c, http.StatusNotFound, "行程不存在")
		case errors.Is(err, service.ErrDetailsExist):
			utils.Fail(c, http.StatusConflict, "行程已有站点安排")
		default:
			utils.FailErr(c, http.StatusInternalServerError, "填充站点失败", err)
		}
		return
	}

	utils.Created(c, gin.H{"created": created})
}

// RebuildEmbeddings 补全缺失的行程嵌入
// POST /admin/embeddings/rebuild?limit=
func (h *Handler) RebuildEmbeddings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	updated, err := h.Embeddings.RebuildMissing(limit)
	if err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "补全嵌入失败", err)
		return
	}

	utils.OK(c, gin.H{"updated": updated})
}

// CleanCache 清空应用缓存
// POST /admin/cache/clean
func (h *Handler) CleanCache(c *gin.Context) {
	utils.CacheClear()
	utils.OK(c, gin.H{"message": "缓存已清空"})
}
