package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LJTian/NewsHub/internal/scraper"
)

type countingRunner struct {
	calls       atomic.Int32
	hadDeadline atomic.Bool
}

func (r *countingRunner) ScrapeAll(ctx context.Context) scraper.CombinedFeed {
	r.calls.Add(1)
	_, ok := ctx.Deadline()
	r.hadDeadline.Store(ok)
	return scraper.CombinedFeed{
		Sources: []scraper.SourceSummary{
			{Source: "a", Success: true, ArticleCount: 3},
			{Source: "b", Success: true},
			{Source: "c", Error: "boom"},
		},
		TotalArticles: 3,
	}
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	if _, err := New("not a cron spec", &countingRunner{}, time.Minute); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestRunOnceInvokesRunnerWithTimeout(t *testing.T) {
	r := &countingRunner{}
	s, err := New("*/30 * * * *", r, time.Minute)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var got scraper.CombinedFeed
	s.OnFeed = func(f scraper.CombinedFeed) { got = f }
	s.RunOnce()

	if r.calls.Load() != 1 {
		t.Fatalf("runner called %d times, want 1", r.calls.Load())
	}
	if !r.hadDeadline.Load() {
		t.Fatalf("runner context should carry a deadline")
	}
	if got.TotalArticles != 3 || len(got.Sources) != 3 {
		t.Fatalf("OnFeed got unexpected feed: %+v", got)
	}
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", &countingRunner{}, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	s.Start()
	s.Stop()
}
