package source

// 内置数据源。页面结构随时可能调整，选择器按“尽力而为”编写，
// 每个字段都带几条兜底，排在前面的是当前页面实际使用的结构。
var builtin = []Config{
	{
		Key:      "techcrunch",
		Name:     "TechCrunch",
		URL:      "https://techcrunch.com/latest/",
		Strategy: StrategyStatic,
		Selectors: SelectorSet{
			Container: MustChain("li.wp-block-post", "div.loop-card", "article"),
			Title:     MustChain("h3.loop-card__title", "h2.loop-card__title", "h2", "h3"),
			Author:    MustChain(".loop-card__author", "a[rel='author']", ".byline"),
			Date:      MustChain("time", ".loop-card__meta time"),
			Excerpt:   MustChain(".loop-card__excerpt", "p"),
			Link:      MustChain("a.loop-card__title-link", "h3 a", "h2 a", "a"),
		},
	},
	{
		Key:      "theverge",
		Name:     "The Verge",
		URL:      "https://www.theverge.com/tech",
		Strategy: StrategyRendered,
		Selectors: SelectorSet{
			Container: MustChain("div.duet--content-cards--content-card", "div[class*='content-card']", "article"),
			Title:     MustChain("a[class*='content-card'][href*='/']", "h2", "h3"),
			Author:    MustChain("a[href*='/authors/']", "span[class*='byline']"),
			Date:      MustChain("time"),
			Excerpt:   MustChain("p[class*='dek']", "p"),
			Link:      MustChain("a[class*='content-card'][href*='/']", "h2 a", "a"),
		},
	},
	{
		Key:      "arstechnica",
		Name:     "Ars Technica",
		URL:      "https://arstechnica.com/",
		Strategy: StrategyStatic,
		Selectors: SelectorSet{
			Container: MustChain("article[id^='post-']", "article"),
			Title:     MustChain("h2 a", "h2", "header h1"),
			Author:    MustChain("a[href*='/author/']", "span[itemprop='name']", ".byline"),
			Date:      MustChain("time", "span.date"),
			Excerpt:   MustChain("p.excerpt", "p[class*='excerpt']", "p"),
			Link:      MustChain("h2 a", "a[href*='arstechnica.com/']", "a"),
		},
	},
	{
		Key:      "smashing",
		Name:     "Smashing Magazine",
		URL:      "https://www.smashingmagazine.com/articles/",
		Strategy: StrategyStatic,
		Selectors: SelectorSet{
			Container: MustChain("article.article--post", "article"),
			Title:     MustChain("h2.article--post__title a", "h2 a", "h2"),
			Author:    MustChain("a.author-post__author-title", "li.article--post__author-name a", ".author"),
			Date:      MustChain("time.article--post__time", "time"),
			Excerpt:   MustChain("p.article--post__teaser", "p"),
			Link:      MustChain("h2.article--post__title a", "h2 a", "a"),
		},
	},
	{
		Key:      "devto",
		Name:     "DEV Community",
		URL:      "https://dev.to/",
		Strategy: StrategyRendered,
		Selectors: SelectorSet{
			Container: MustChain("div.crayons-story", "article"),
			Title:     MustChain("h2.crayons-story__title a", "h3.crayons-story__title a", "h2", "h3"),
			Author:    MustChain("a.crayons-story__secondary", "button[id^='story-author-preview-trigger']", ".profile-preview-card__trigger"),
			Date:      MustChain("time", "a.crayons-story__tertiary time"),
			Excerpt:   MustChain("div.crayons-story__snippet", "p"),
			Link:      MustChain("h2.crayons-story__title a", "h3.crayons-story__title a", "a[id^='article-link-']", "a"),
		},
	},
	{
		Key:      "goblog",
		Name:     "The Go Blog",
		URL:      "https://go.dev/blog/",
		Strategy: StrategyStatic,
		Selectors: SelectorSet{
			// 列表页里标题和摘要是同级的 p.blogtitle / p.blogsummary，没有共同的外层元素，
			// 以标题为容器时摘要永远取不到，因此不配置 Excerpt
			Container: MustChain("p.blogtitle", "div.blogtitle", "article"),
			Title:     MustChain("a"),
			Author:    MustChain("span.author"),
			Date:      MustChain("span.date"),
			Link:      MustChain("a"),
		},
	},
}

// Default 返回内置数据源的注册表
func Default() *Registry {
	r, err := New(builtin...)
	if err != nil {
		panic(err)
	}
	return r
}
