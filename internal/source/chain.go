package source

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Chain 是一个字段的选择器兜底链：按顺序尝试，先命中者胜出。
// 选择器在注册表构建时一次性编译，运行期不再解析字符串。
type Chain struct {
	exprs    []string
	matchers []cascadia.Selector
}

// ParseChain 依次编译各个备选选择器，任意一个非法即返回错误
func ParseChain(exprs ...string) (Chain, error) {
	c := Chain{
		exprs:    make([]string, 0, len(exprs)),
		matchers: make([]cascadia.Selector, 0, len(exprs)),
	}
	for _, e := range exprs {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		m, err := cascadia.Compile(e)
		if err != nil {
			return Chain{}, fmt.Errorf("compile selector %q: %w", e, err)
		}
		c.exprs = append(c.exprs, e)
		c.matchers = append(c.matchers, m)
	}
	return c, nil
}

// MustChain 用于静态配置，选择器写错时直接 panic
func MustChain(exprs ...string) Chain {
	c, err := ParseChain(exprs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Matchers 返回编译后的备选项，顺序与声明一致
func (c Chain) Matchers() []cascadia.Selector {
	return c.matchers
}

func (c Chain) Len() int {
	return len(c.matchers)
}

func (c Chain) Empty() bool {
	return len(c.matchers) == 0
}

func (c Chain) String() string {
	return strings.Join(c.exprs, " | ")
}
