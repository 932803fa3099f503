package scheduler

import (
	"context"
	"time"

	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner 定时任务需要的抓取能力
type Runner interface {
	ScrapeAll(ctx context.Context) scraper.CombinedFeed
}

// Scheduler 按 cron 表达式定期全量抓取一次，只记录各数据源的成功情况与文章数，
// 用于及早发现页面改版导致的选择器失效。抓取结果不做保存。
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	timeout time.Duration
	// OnFeed 每轮结束后回调，可为空
	OnFeed func(scraper.CombinedFeed)
}

func New(spec string, runner Runner, timeout time.Duration) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		runner:  runner,
		timeout: timeout,
	}

	_, err := c.AddFunc(spec, s.runOnce)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	zap.S().Info("start scheduled scrape...")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	feed := s.runner.ScrapeAll(ctx)
	failed := 0
	for _, src := range feed.Sources {
		if !src.Success {
			failed++
			zap.S().Warnf("scheduled scrape %s failed: %s", src.Source, src.Error)
			continue
		}
		if src.ArticleCount == 0 {
			// 请求成功但一篇都没解析出来，多半是页面结构变了
			zap.S().Warnf("scheduled scrape %s got 0 articles, selectors may be outdated", src.Source)
		}
	}
	zap.S().Infof("scheduled scrape done, sources=%d failed=%d articles=%d",
		len(feed.Sources), failed, feed.TotalArticles)

	if s.OnFeed != nil {
		s.OnFeed(feed)
	}
}
