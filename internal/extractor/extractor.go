package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/LJTian/NewsHub/internal/source"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// MaxArticles 单个数据源最多处理的文章块数量
const MaxArticles = 20

// Extract 按选择器从 HTML 中解析文章列表，结果不超过 MaxArticles 条。
// 缺少标题或链接的块直接跳过，不算错误。
func Extract(html string, set source.SelectorSet, baseURL string) ([]Article, error) {
	if set.Container.Empty() {
		return nil, &ExtractionError{Err: errors.New("empty container selector")}
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("parse base url %q: %w", baseURL, err)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("parse html: %w", err)}
	}

	containers := selectContainers(doc.Selection, set.Container)
	n := containers.Length()
	if n > MaxArticles {
		n = MaxArticles
	}

	results := make([]Article, 0, n)
	for i := 0; i < n; i++ {
		block := containers.Eq(i)

		title := fieldText(block, set.Title)
		if title == "" {
			continue
		}
		link := fieldLink(block, set.Link, base)
		if link == "" {
			continue
		}

		results = append(results, Article{
			Title:   title,
			URL:     link,
			Author:  fieldText(block, set.Author),
			Date:    fieldDate(block, set.Date),
			Excerpt: truncateExcerpt(fieldText(block, set.Excerpt), MaxExcerptRunes, ExcerptMarker),
		})
	}
	return results, nil
}

// selectContainers 只用第一条有命中的容器选择器，后面的备选不再合并进来
func selectContainers(root *goquery.Selection, chain source.Chain) *goquery.Selection {
	for _, m := range chain.Matchers() {
		if sel := root.FindMatcher(m); sel.Length() > 0 {
			return sel
		}
	}
	return root.FindNodes()
}

// fieldText 依次尝试各备选选择器，返回第一个非空文本
func fieldText(block *goquery.Selection, chain source.Chain) string {
	var text string
	eachMatch(block, chain, func(s *goquery.Selection) bool {
		text = cleanText(s.Text())
		return text != ""
	})
	return text
}

// fieldDate 与 fieldText 相同，但优先使用 <time datetime="..."> 这类属性值
func fieldDate(block *goquery.Selection, chain source.Chain) string {
	var date string
	eachMatch(block, chain, func(s *goquery.Selection) bool {
		if v, ok := s.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			date = strings.TrimSpace(v)
			return true
		}
		date = cleanText(s.Text())
		return date != ""
	})
	return date
}

// fieldLink 先在块内按选择器找带 href 的元素，找不到时看块本身是不是链接
func fieldLink(block *goquery.Selection, chain source.Chain, base *url.URL) string {
	var link string
	eachMatch(block, chain, func(s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			link = resolveLink(base, href)
		}
		return link != ""
	})
	if link != "" {
		return link
	}
	if href, ok := block.Attr("href"); ok {
		return resolveLink(base, href)
	}
	return ""
}

// eachMatch 按兜底链顺序遍历块内所有命中元素，fn 返回 true 时停止
func eachMatch(block *goquery.Selection, chain source.Chain, fn func(*goquery.Selection) bool) {
	for _, m := range chain.Matchers() {
		if matchAny(block, m, fn) {
			return
		}
	}
}

func matchAny(block *goquery.Selection, m cascadia.Selector, fn func(*goquery.Selection) bool) bool {
	found := false
	block.FindMatcher(m).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = fn(s)
		return !found
	})
	return found
}

// resolveLink 将相对链接补全为绝对地址，非 http(s) 链接视为无效
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if (abs.Scheme != "http" && abs.Scheme != "https") || abs.Host == "" {
		return ""
	}
	return abs.String()
}
