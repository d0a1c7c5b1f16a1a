package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/service"
	"github.com/user/tourhub/internal/utils"
)

// SharePage 行程分享落地页，LINE 外部浏览器打开分享链接时展示
// GET /share/:id
func (h *Handler) SharePage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderNotFound(c)
		return
	}

	result, err := h.Trips.Detail(id)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			h.renderNotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "服务器错误")
		return
	}

	c.HTML(http.StatusOK, "share.html", gin.H{
		"Title":    result.Trip.Title + " - " + h.Config.SiteName,
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Trip":     result.Trip,
		"Details":  result.Details,
		"Stats":    result.Stats,
	})
}

// NotFound 未匹配路由：页面请求渲染 404 页，其余返回 JSON
func (h *Handler) NotFound(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		h.renderNotFound(c)
		return
	}
	utils.Fail(c, http.StatusNotFound, "接口不存在")
}

// MethodNotAllowed 路径存在但方法不对
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	utils.Fail(c, http.StatusMethodNotAllowed, "请求方法不允许")
}

func (h *Handler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"Title":    "页面不存在 - " + h.Config.SiteName,
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
	})
}
