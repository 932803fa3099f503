package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSource 表示请求的数据源 key 未注册
var ErrUnknownSource = errors.New("unknown source")

// Strategy 决定一个数据源用哪种方式拉取 HTML
type Strategy int

const (
	// StrategyStatic 直接 HTTP GET
	StrategyStatic Strategy = iota
	// StrategyRendered 启动 headless 浏览器渲染后取页面
	StrategyRendered
)

func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "static"
	case StrategyRendered:
		return "rendered"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// SelectorSet 每个字段一条兜底链
type SelectorSet struct {
	Container Chain
	Title     Chain
	Author    Chain
	Date      Chain
	Excerpt   Chain
	Link      Chain
}

// Config 描述一个数据源，启动时构建，之后只读
type Config struct {
	Key       string
	Name      string
	URL       string
	Strategy  Strategy
	Selectors SelectorSet
}

// Info 是对外展示用的精简信息
type Info struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Strategy string `json:"strategy"`
}

// Registry 是按声明顺序保存的只读数据源表，不提供修改接口
type Registry struct {
	order []Config
	byKey map[string]int
}

// New 校验并构建注册表：key 不能为空或重复，容器、标题、链接三条链不能为空
func New(cfgs ...Config) (*Registry, error) {
	r := &Registry{
		order: make([]Config, 0, len(cfgs)),
		byKey: make(map[string]int, len(cfgs)),
	}
	for _, c := range cfgs {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return nil, fmt.Errorf("source %q: empty key", c.Name)
		}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("source %q: duplicate key", key)
		}
		if c.URL == "" {
			return nil, fmt.Errorf("source %q: empty url", key)
		}
		if c.Selectors.Container.Empty() || c.Selectors.Title.Empty() || c.Selectors.Link.Empty() {
			return nil, fmt.Errorf("source %q: container/title/link selectors are required", key)
		}
		c.Key = key
		r.byKey[key] = len(r.order)
		r.order = append(r.order, c)
	}
	return r, nil
}

// List 按声明顺序返回所有数据源的副本
func (r *Registry) List() []Config {
	out := make([]Config, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Info() []Info {
	out := make([]Info, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, Info{Key: c.Key, Name: c.Name, URL: c.URL, Strategy: c.Strategy.String()})
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Lookup 按 key 查找，未注册时返回包装了 ErrUnknownSource 的错误
func (r *Registry) Lookup(key string) (Config, error) {
	idx, ok := r.byKey[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownSource, key)
	}
	return r.order[idx], nil
}
