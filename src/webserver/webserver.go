package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/company-scout/src/config"
	"github.com/stake-plus/company-scout/src/types"
)

// Runner executes one company search end to end.
type Runner interface {
	Run(ctx context.Context, companyName string, allowScrape bool) *types.Report
}

// Notifier receives completed reports for out-of-band delivery.
type Notifier interface {
	SearchCompleted(rep *types.Report)
}

func New(cfg config.Config, builder Runner, rdb *redis.Client, notifier Notifier) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	g.Use(cors.New(corsCfg))

	attachRoutes(g, cfg, builder, rdb, notifier)
	return g
}

func attachRoutes(g *gin.Engine, cfg config.Config, builder Runner, rdb *redis.Client, notifier Notifier) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	g.GET("/metrics", MetricsHandler())

	search := NewSearch(builder, rdb, notifier)

	v1 := g.Group("/v1")
	if cfg.JWTSecret != "" && cfg.AuthSecret != "" {
		auth := NewAuth([]byte(cfg.JWTSecret), cfg.AuthSecret)
		v1.POST("/auth/token", auth.Token)
		v1.POST("/search", auth.Middleware(), search.Create)
	} else {
		v1.POST("/search", search.Create)
	}
}
