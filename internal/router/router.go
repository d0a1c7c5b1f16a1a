package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/tourhub/internal/handler"
	"github.com/user/tourhub/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 路径存在但方法不对时返回 405 而不是 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(h.MethodNotAllowed)
	r.NoRoute(h.NotFound)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== LIFF 核心接口 ====================
	r.GET("/search", h.SearchTrips)
	r.GET("/rankings", h.Rankings)
	r.GET("/trip-detail", h.TripDetail)
	r.GET("/favorites", h.ListFavorites)
	r.POST("/favorites", h.AddFavorite)
	r.DELETE("/favorites", h.RemoveFavorite)
	r.POST("/stats", h.RecordStats)
	r.GET("/filters", h.Filters)

	// ==================== 分享落地页 ====================
	r.GET("/share/:id", h.SharePage)

	// ==================== 扩展 API ====================
	api := r.Group("/api")
	{
		api.POST("/auth/line", h.LineLogin)
		api.GET("/auth/me", h.Me)
		api.POST("/auth/logout", h.Logout)

		api.GET("/trips/similar", h.SimilarTrips)
		api.GET("/trends", h.Trends)
	}

	// ==================== 管理后台 ====================
	r.POST("/admin/login", h.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/trips/:id/seed-details", h.SeedTripDetails)
		admin.POST("/embeddings/rebuild", h.RebuildEmbeddings)
		admin.POST("/cache/clean", h.CleanCache)
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		"date": func(layout string, t interface{}) (string, error) {
			type formatter interface{ Format(string) string }
			if f, ok := t.(formatter); ok {
				return f.Format(layout), nil
			}
			return "", fmt.Errorf("不支持的时间类型: %T", t)
		},
	}

	pages := []string{"share", "404"}
	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
