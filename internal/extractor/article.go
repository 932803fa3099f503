package extractor

import "fmt"

// Article 统一后的文章结构，可选字段为空字符串表示缺失。
// Date 原样保留页面上的日期文本，不做格式解析。
type Article struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// ExtractionError HTML 解析失败或选择器配置不可用
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract articles: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
