package extractor

import "strings"

const (
	MaxExcerptRunes = 300
	ExcerptMarker   = "..."
)

// cleanText 合并连续空白并去掉首尾空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateExcerpt 按 rune 截断，超过上限时保留前 (limit-len(marker)) 个字符再拼接省略标记，
// 结果长度恰好等于 limit
func truncateExcerpt(s string, limit int, marker string) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	keep := limit - len([]rune(marker))
	if keep < 0 {
		keep = 0
	}
	return string(rs[:keep]) + marker
}
