package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/core/config"
	"go-movements-api/internal/repo"
	"go-movements-api/internal/transport/graph"
	mdw "go-movements-api/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：/api/v1/auth/login + /api/v1/graphql。
// GraphQL 端点本身是公开的，鉴权在 resolver 闸口做，所以这里只“挂”身份不拦截。
func NewAPIEngine(l *zap.Logger, db *gorm.DB, src *auth.PrincipalSource, jwter *auth.JWTer, gqlCfg config.GraphQL) (*gin.Engine, error) {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	mountAuthActions(api, db, jwter)

	resolver := &graph.Resolver{
		Users:     repo.NewUserRepo(db),
		Movements: repo.NewMovementRepo(db),
		Log:       l,
	}
	schema, err := graph.New(resolver)
	if err != nil {
		return nil, err
	}
	h := graph.NewHTTPHandler(&schema, gqlCfg.Pretty, gqlCfg.GraphiQL)

	gql := api.Group("/graphql")
	gql.Use(mdw.AttachPrincipal(src))
	gql.POST("", gin.WrapH(h))
	gql.GET("", gin.WrapH(h)) // GraphiQL / GET 查询

	return r, nil
}
