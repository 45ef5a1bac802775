package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/core/cache"
	"go-movements-api/internal/domain"
	mdw "go-movements-api/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：/admin/v1 全组要求 ADMIN，外加 /metrics
func NewAdminEngine(l *zap.Logger, db *gorm.DB, src *auth.PrincipalSource, cch *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.RequestID(),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.RequireRole(src, domain.RoleAdmin))

	mountAdminActions(admin, db, cch)
	mountReportActions(admin, db)

	return r
}
