package scraper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/LJTian/NewsHub/internal/collector"
	"github.com/LJTian/NewsHub/internal/extractor"
	"github.com/LJTian/NewsHub/internal/processor"
	"github.com/LJTian/NewsHub/internal/source"
	"go.uber.org/zap"
)

const (
	defaultDelayMin     = 500 * time.Millisecond
	defaultDelayMax     = 1500 * time.Millisecond
	defaultFetchTimeout = 30 * time.Second
	defaultRenderSettle = 2 * time.Second
)

// Scraper 驱动所有数据源的抓取：单源串行（延迟 -> 拉取 -> 解析），多源并发。
// 自身无状态，每次调用都重新拉取，不做缓存和重试。
type Scraper struct {
	registry *source.Registry
	fetchers map[source.Strategy]collector.Fetcher
	delay    func() time.Duration
	now      func() time.Time
}

type Option func(*Scraper)

// WithFetcher 替换某种策略使用的 Fetcher
func WithFetcher(st source.Strategy, f collector.Fetcher) Option {
	return func(s *Scraper) {
		s.fetchers[st] = f
	}
}

// WithDelay 自定义每次抓取前的礼貌延迟
func WithDelay(fn func() time.Duration) Option {
	return func(s *Scraper) {
		s.delay = fn
	}
}

func WithClock(fn func() time.Time) Option {
	return func(s *Scraper) {
		s.now = fn
	}
}

func New(reg *source.Registry, opts ...Option) *Scraper {
	s := &Scraper{
		registry: reg,
		fetchers: map[source.Strategy]collector.Fetcher{
			source.StrategyStatic:   collector.NewStaticFetcher(defaultFetchTimeout),
			source.StrategyRendered: collector.NewRenderedFetcher(defaultFetchTimeout, defaultRenderSettle, ""),
		},
		delay: RandomDelay(defaultDelayMin, defaultDelayMax),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomDelay 返回在 [lo, hi] 内均匀取值的延迟函数，
// 避免多个并发请求同时打到同一个站点
func RandomDelay(lo, hi time.Duration) func() time.Duration {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo+1)
	}
}

// Sources 返回注册的数据源列表（key、名称、URL）
func (s *Scraper) Sources() []source.Info {
	return s.registry.Info()
}

// ScrapeOne 抓取单个数据源。key 未注册时返回失败的结果而不是 error。
func (s *Scraper) ScrapeOne(ctx context.Context, key string) SourceResult {
	cfg, err := s.registry.Lookup(key)
	if err != nil {
		zap.S().Warnf("scrape %s: %v", key, err)
		return s.failed(key, "", err)
	}
	return s.run(ctx, cfg)
}

// ScrapeAll 并发抓取全部数据源并合并。单个源失败（包括 panic）只影响它自己的结果，
// 所有源都结束后才返回。
func (s *Scraper) ScrapeAll(ctx context.Context) CombinedFeed {
	cfgs := s.registry.List()
	zap.S().Infof("start scrape job, %d sources...", len(cfgs))

	// 每个 goroutine 只写自己的下标，无需加锁
	results := make([]SourceResult, len(cfgs))
	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.run(ctx, cfg)
		}()
	}
	wg.Wait()

	feed := CombinedFeed{
		Timestamp: s.now(),
		Sources:   make([]SourceSummary, 0, len(results)),
	}
	batches := make([]processor.Batch, 0, len(results))
	for _, r := range results {
		feed.Sources = append(feed.Sources, SourceSummary{
			Source:       r.Source,
			Name:         r.Name,
			Success:      r.Success,
			ArticleCount: len(r.Articles),
			Error:        r.Error,
		})
		if r.Success {
			batches = append(batches, processor.Batch{Source: r.Source, Name: r.Name, Articles: r.Articles})
		}
	}
	feed.Articles = processor.Merge(batches)
	feed.TotalArticles = len(feed.Articles)

	zap.S().Infof("scrape job done (all sources), total=%d articles", feed.TotalArticles)
	return feed
}

// run 单个数据源的完整流程：延迟 -> 拉取 -> 解析。任何错误或 panic 都转成失败结果。
func (s *Scraper) run(ctx context.Context, cfg source.Config) (res SourceResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("scrape %s panic: %v", cfg.Key, r)
			res = s.failed(cfg.Key, cfg.Name, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := sleepCtx(ctx, s.delay()); err != nil {
		return s.failed(cfg.Key, cfg.Name, err)
	}

	f, ok := s.fetchers[cfg.Strategy]
	if !ok || f == nil {
		return s.failed(cfg.Key, cfg.Name, fmt.Errorf("no fetcher for strategy %s", cfg.Strategy))
	}

	zap.S().Infof("fetch %s (%s)...", cfg.Key, cfg.Strategy)
	html, err := f.Fetch(ctx, cfg.URL)
	if err != nil {
		zap.S().Warnf("fetch %s error: %v", cfg.Key, err)
		return s.failed(cfg.Key, cfg.Name, err)
	}

	articles, err := extractor.Extract(html, cfg.Selectors, cfg.URL)
	if err != nil {
		zap.S().Warnf("extract %s error: %v", cfg.Key, err)
		return s.failed(cfg.Key, cfg.Name, err)
	}
	if len(articles) == 0 {
		zap.S().Infof("fetch %s got 0 articles", cfg.Key)
	}

	zap.S().Infof("%s done, articles=%d", cfg.Key, len(articles))
	return SourceResult{
		Source:    cfg.Key,
		Name:      cfg.Name,
		Success:   true,
		Timestamp: s.now(),
		Articles:  articles,
	}
}

func (s *Scraper) failed(key, name string, err error) SourceResult {
	return SourceResult{
		Source:    key,
		Name:      name,
		Success:   false,
		Timestamp: s.now(),
		Articles:  []extractor.Article{},
		Error:     err.Error(),
		Err:       err,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
