package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultSettleDelay    = 2 * time.Second
	defaultViewportWidth  = 1920
	defaultViewportHeight = 1080
	// 等待结束后读取页面 DOM 的额外时间上限
	renderReadTimeout = 10 * time.Second
)

// RenderedFetcher 每次调用独立启动一个 headless Chrome，等页面网络空闲并
// 额外等待 Settle 让前端渲染完成，再读取完整的页面 HTML。
type RenderedFetcher struct {
	NavTimeout time.Duration
	Settle     time.Duration
	// ExecPath 为空时由 chromedp 查找本机 Chrome
	ExecPath  string
	Width     int
	Height    int
	UserAgent func() string
}

func NewRenderedFetcher(navTimeout, settle time.Duration, execPath string) *RenderedFetcher {
	return &RenderedFetcher{
		NavTimeout: navTimeout,
		Settle:     settle,
		ExecPath:   execPath,
		Width:      defaultViewportWidth,
		Height:     defaultViewportHeight,
	}
}

func (f *RenderedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	sess, err := launchBrowser(ctx, f.allocatorOptions())
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("launch browser: %w", err)}
	}
	// 无论成功、超时还是出错都要回收浏览器进程
	defer sess.Close()

	navTimeout := f.NavTimeout
	if navTimeout <= 0 {
		navTimeout = defaultFetchTimeout
	}
	settle := f.Settle
	if settle < 0 {
		settle = defaultSettleDelay
	}

	w, h := f.viewport()
	idle := sess.watchNetworkIdle()

	navCtx, cancelNav := context.WithTimeout(sess.ctx, navTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.EmulateViewport(int64(w), int64(h)),
		page.SetLifecycleEventsEnabled(true),
		idle.arm(),
		chromedp.Navigate(url),
		idle.wait(),
	); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("navigate: %w", err)}
	}

	var html string
	readCtx, cancelRead := context.WithTimeout(sess.ctx, settle+renderReadTimeout)
	defer cancelRead()
	if err := chromedp.Run(readCtx,
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("read rendered page: %w", err)}
	}
	return html, nil
}

func (f *RenderedFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	ua := RandomUserAgent
	if f.UserAgent != nil {
		ua = f.UserAgent
	}
	w, h := f.viewport()

	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+3)
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.UserAgent(ua()),
		chromedp.WindowSize(w, h),
	)
	if f.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(f.ExecPath))
	}
	return opts
}

func (f *RenderedFetcher) viewport() (int, int) {
	if f.Width <= 0 || f.Height <= 0 {
		return defaultViewportWidth, defaultViewportHeight
	}
	return f.Width, f.Height
}

// browserSession 持有一次抓取独占的浏览器进程，Close 可重复调用
type browserSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	once        sync.Once
}

// launchBrowser 启动独立的浏览器实例（chromedp 为每个 allocator 使用临时 profile 目录）。
// 启动失败时已申请的资源会立即释放。
func launchBrowser(parent context.Context, opts []chromedp.ExecAllocatorOption) (*browserSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	s := &browserSession{ctx: tabCtx, cancelTab: cancelTab, cancelAlloc: cancelAlloc}

	// 首次 Run 不能挂在带超时的子 context 上，否则超时会连带关闭浏览器
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *browserSession) Close() {
	s.once.Do(func() {
		// 先关 tab 再关 allocator，后者会结束 Chrome 进程并清理临时目录
		s.cancelTab()
		s.cancelAlloc()
		zap.S().Debugf("browser session closed")
	})
}

// networkIdle 监听主文档的 networkIdle 生命周期事件
type networkIdle struct {
	mu     sync.Mutex
	armed  bool
	loader cdp.LoaderID
	done   chan struct{}
	closed bool
}

func (s *browserSession) watchNetworkIdle() *networkIdle {
	n := &networkIdle{done: make(chan struct{})}
	chromedp.ListenTarget(s.ctx, func(ev any) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		// 开启生命周期事件时 about:blank 会补发历史事件，arm 之前的一律忽略
		if !n.armed || n.closed {
			return
		}
		switch e.Name {
		case "init":
			if n.loader == "" {
				n.loader = e.LoaderID
			}
		case "networkIdle":
			if n.loader != "" && e.LoaderID == n.loader {
				n.closed = true
				close(n.done)
			}
		}
	})
	return n
}

func (n *networkIdle) arm() chromedp.Action {
	return chromedp.ActionFunc(func(context.Context) error {
		n.mu.Lock()
		n.armed = true
		n.mu.Unlock()
		return nil
	})
}

func (n *networkIdle) wait() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		select {
		case <-n.done:
			return nil
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("wait for network idle: %w", ctx.Err())
			}
			return ctx.Err()
		}
	})
}
