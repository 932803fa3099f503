package processor

import (
	"slices"

	"github.com/LJTian/NewsHub/internal/extractor"
)

// FeedArticle 合并到总列表中的文章，附带来源信息
type FeedArticle struct {
	extractor.Article
	Source     string `json:"source"`
	SourceName string `json:"source_name"`
}

// Batch 一个数据源成功解析出的文章
type Batch struct {
	Source   string
	Name     string
	Articles []extractor.Article
}

// Merge 把各数据源的文章拍平并打上来源标记，再按日期排序。
// 不做跨源去重，同一篇文章出现在两个源里会保留两份。
func Merge(batches []Batch) []FeedArticle {
	total := 0
	for _, b := range batches {
		total += len(b.Articles)
	}

	out := make([]FeedArticle, 0, total)
	for _, b := range batches {
		for _, a := range b.Articles {
			out = append(out, FeedArticle{Article: a, Source: b.Source, SourceName: b.Name})
		}
	}

	SortByDate(out)
	return out
}

// SortByDate 有日期的排在前面，日期之间按字符串倒序比较（不解析日期格式，
// 同一来源格式一致时才有意义）；无日期的保持原有相对顺序。
func SortByDate(items []FeedArticle) {
	slices.SortStableFunc(items, func(a, b FeedArticle) int {
		aDated, bDated := a.Date != "", b.Date != ""
		switch {
		case aDated && !bDated:
			return -1
		case !aDated && bDated:
			return 1
		case !aDated && !bDated:
			return 0
		}
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})
}
