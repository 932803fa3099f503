package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsHub/internal/api"
	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/config"
	"github.com/LJTian/NewsHub/internal/logger"
	"github.com/LJTian/NewsHub/internal/scheduler"
	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 先初始化日志，config.Load 的输出才能落到 zap 上
	flush, err := logger.Init(config.LogLevel())
	if err != nil {
		panic(err)
	}
	defer flush()

	cfg := config.Load()
	log := zap.S()

	s := scraper.New(source.Default(),
		scraper.WithFetcher(source.StrategyStatic, collector.NewStaticFetcher(cfg.FetchTimeout)),
		scraper.WithFetcher(source.StrategyRendered, collector.NewRenderedFetcher(cfg.FetchTimeout, cfg.RenderSettle, cfg.ChromePath)),
		scraper.WithDelay(scraper.RandomDelay(cfg.DelayMin, cfg.DelayMax)),
	)
	for _, info := range s.Sources() {
		log.Infof("source registered: %s (%s, %s)", info.Key, info.Strategy, info.URL)
	}

	// 配置了 CRON_SPEC 时定期全量抓取一次，用于观察各数据源的选择器是否仍然有效
	if cfg.CronSpec != "" {
		sched, err := scheduler.New(cfg.CronSpec, s, cfg.CronTimeout)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}
	api.NewServer(s).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("starting api server at %s ...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server exit: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down api server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("server shutdown: %v", err)
	}
}
