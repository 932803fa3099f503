package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/config"
	"github.com/LJTian/NewsHub/internal/logger"
	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
	"go.uber.org/zap"
)

// 一个仅执行一次抓取的命令行入口：不带参数抓取全部数据源，带参数只抓取指定 key。
// 结果以 JSON 输出到标准输出，日志写到标准错误。
func main() {
	// 先初始化日志，config.Load 的输出才能落到 zap 上
	flush, err := logger.Init(config.LogLevel())
	if err != nil {
		panic(err)
	}

	cfg := config.Load()

	s := scraper.New(source.Default(),
		scraper.WithFetcher(source.StrategyStatic, collector.NewStaticFetcher(cfg.FetchTimeout)),
		scraper.WithFetcher(source.StrategyRendered, collector.NewRenderedFetcher(cfg.FetchTimeout, cfg.RenderSettle, cfg.ChromePath)),
		scraper.WithDelay(scraper.RandomDelay(cfg.DelayMin, cfg.DelayMax)),
	)

	ctx := context.Background()
	var out any
	exitCode := 0
	if len(os.Args) > 1 {
		res := s.ScrapeOne(ctx, os.Args[1])
		if !res.Success {
			exitCode = 1
		}
		out = res
	} else {
		out = s.ScrapeAll(ctx)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		zap.S().Errorf("encode result: %v", err)
		exitCode = 1
	}

	flush()
	os.Exit(exitCode)
}
