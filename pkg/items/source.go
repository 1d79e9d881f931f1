package items

import (
	"context"
	"errors"

	"github.com/gonewx/cinereel/pkg/components"
)

// 缺失字段时使用的默认值
const (
	PlaceholderPoster = "https://images.unsplash.com/photo-1524985069026-dd778a71c7b4"
	UntitledFilm      = "Filme sem título"
)

// ErrNoItems 数据源返回了空列表
var ErrNoItems = errors.New("items: source returned no items")

// Source 影片列表数据源
type Source interface {
	Load(ctx context.Context) ([]components.Item, error)
}

// SourceFunc 将普通函数适配为 Source
type SourceFunc func(ctx context.Context) ([]components.Item, error)

// Load 调用 f
func (f SourceFunc) Load(ctx context.Context) ([]components.Item, error) {
	return f(ctx)
}

// Result 一次加载的结果
type Result struct {
	Items []components.Item
	// Degraded 为 true 表示主数据源不可用，Items 来自备用列表
	Degraded bool
	// Err 主数据源的错误（Degraded 时仍保留，便于界面提示）
	Err error
}

// normalize 补全缺失的标题和海报，并按 limit 截断（limit <= 0 不截断）
func normalize(items []components.Item, limit int) []components.Item {
	out := make([]components.Item, 0, len(items))
	for _, item := range items {
		if item.Key == "" {
			item.Key = UntitledFilm
		}
		if item.ImageRef == "" {
			item.ImageRef = PlaceholderPoster
		}
		out = append(out, item)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
