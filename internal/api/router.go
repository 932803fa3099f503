package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
	"github.com/gin-gonic/gin"
)

// Engine 是 API 依赖的抓取能力，便于测试时替换
type Engine interface {
	Sources() []source.Info
	ScrapeOne(ctx context.Context, key string) scraper.SourceResult
	ScrapeAll(ctx context.Context) scraper.CombinedFeed
}

type Server struct {
	engine Engine
}

func NewServer(engine Engine) *Server {
	return &Server{engine: engine}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/sources", s.listSources)
		v1.GET("/articles", s.scrapeAll)
		v1.GET("/articles/:source", s.scrapeOne)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.engine.Sources(),
	})
}

// scrapeAll 每次请求都实时抓取全部数据源，单个源失败体现在 data.sources 中
func (s *Server) scrapeAll(c *gin.Context) {
	feed := s.engine.ScrapeAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    feed,
	})
}

func (s *Server) scrapeOne(c *gin.Context) {
	res := s.engine.ScrapeOne(c.Request.Context(), c.Param("source"))
	if errors.Is(res.Err, source.ErrUnknownSource) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "unknown_source",
			"message": res.Error,
			"data":    res,
		})
		return
	}

	code, message := "ok", "success"
	if !res.Success {
		code, message = "scrape_failed", res.Error
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    code,
		"message": message,
		"data":    res,
	})
}
