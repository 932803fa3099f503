package scraper

import (
	"time"

	"github.com/LJTian/NewsHub/internal/extractor"
	"github.com/LJTian/NewsHub/internal/processor"
)

// SourceResult 单个数据源一次抓取的结果封装，无论成败每个源都恰好产出一个
type SourceResult struct {
	Source    string              `json:"source"`
	Name      string              `json:"name"`
	Success   bool                `json:"success"`
	Timestamp time.Time           `json:"timestamp"`
	Articles  []extractor.Article `json:"articles"`
	Error     string              `json:"error,omitempty"`

	// Err 保留原始错误，方便调用方用 errors.Is / errors.As 判断类型
	Err error `json:"-"`
}

// SourceSummary 合并结果中每个数据源的概要
type SourceSummary struct {
	Source       string `json:"source"`
	Name         string `json:"name"`
	Success      bool   `json:"success"`
	ArticleCount int    `json:"article_count"`
	Error        string `json:"error,omitempty"`
}

// CombinedFeed 所有数据源的汇总。TotalArticles 等于各成功源文章数之和。
type CombinedFeed struct {
	Timestamp     time.Time               `json:"timestamp"`
	Sources       []SourceSummary         `json:"sources"`
	TotalArticles int                     `json:"total_articles"`
	Articles      []processor.FeedArticle `json:"articles"`
}
