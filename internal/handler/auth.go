package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/middleware"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

type lineLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// LineLogin LIFF 前端登录：校验 id_token 后把用户写入会话
// POST /api/auth/line
func (h *Handler) LineLogin(c *gin.Context) {
	var req lineLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailErr(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	profile, err := utils.VerifyLineIDToken(h.Config.LineChannelID, req.IDToken)
	if err != nil {
		utils.FailErr(c, http.StatusUnauthorized, "LINE 登录校验失败", err)
		return
	}

	user := model.SessionUser{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		PictureURL:  profile.PictureURL,
	}
	if err := middleware.SetSessionUser(c, user); err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "保存会话失败", err)
		return
	}

	utils.OK(c, gin.H{"user": gin.H{
		"user_id":      user.UserID,
		"display_name": user.DisplayName,
		"picture_url":  user.PictureURL,
	}})
}

// Me 当前登录用户
// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	user := middleware.GetSessionUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, "未登录")
		return
	}

	utils.OK(c, gin.H{"user": gin.H{
		"user_id":      user.UserID,
		"display_name": user.DisplayName,
		"picture_url":  user.PictureURL,
	}})
}

// Logout 退出登录
// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.ClearSessionUser(c); err != nil {
		utils.FailErr(c, http.StatusInternalServerError, "清除会话失败", err)
		return
	}
	utils.OK(c, gin.H{"message": "已退出登录"})
}
