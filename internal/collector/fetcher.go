package collector

import (
	"context"
	"fmt"
)

// Fetcher 抽象一种拉取页面 HTML 的方式（静态请求 / 浏览器渲染）
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError 网络错误、非 2xx 状态、导航超时、浏览器启动失败都归为此类
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
