package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const defaultFetchTimeout = 30 * time.Second

// StaticFetcher 用 colly 发一次 GET 获取原始 HTML，自动跟随重定向
type StaticFetcher struct {
	Timeout time.Duration
	// UserAgent 为空时每次随机选择
	UserAgent func() string
}

func NewStaticFetcher(timeout time.Duration) *StaticFetcher {
	return &StaticFetcher{Timeout: timeout}
}

type staticResult struct {
	body   string
	status int
	err    error
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ua := RandomUserAgent
	if f.UserAgent != nil {
		ua = f.UserAgent
	}

	// 每次调用新建 collector，避免 visited 记录和回调在并发请求之间串扰
	c := colly.NewCollector(
		colly.UserAgent(ua()),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)
	// colly 默认把 >= 203 的状态码当作错误，这里统一交给下面的 2xx 判断
	c.ParseHTTPErrorResponse = true

	c.OnRequest(func(r *colly.Request) {
		for k, v := range browserHeaders {
			r.Headers.Set(k, v)
		}
	})

	done := make(chan staticResult, 1)
	go func() {
		var res staticResult
		c.OnResponse(func(r *colly.Response) {
			res.status = r.StatusCode
			res.body = string(r.Body)
		})
		c.OnError(func(r *colly.Response, err error) {
			if r != nil {
				res.status = r.StatusCode
			}
		})
		res.err = c.Visit(url)
		done <- res
	}()

	// colly 不接收 context：取消时直接返回，后台请求由 request timeout 兜底结束
	select {
	case <-ctx.Done():
		return "", &FetchError{URL: url, Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			zap.S().Debugf("static fetch %s failed: %v", url, res.err)
			return "", &FetchError{URL: url, StatusCode: res.status, Err: res.err}
		}
		if res.status < http.StatusOK || res.status >= http.StatusMultipleChoices {
			return "", &FetchError{URL: url, StatusCode: res.status, Err: fmt.Errorf("unexpected status %d", res.status)}
		}
		return res.body, nil
	}
}
