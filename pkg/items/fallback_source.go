package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gonewx/cinereel/pkg/components"
)

// FallbackSource 主数据源失败或为空时使用备用数据源
type FallbackSource struct {
	Primary  Source
	Fallback Source
	logger   *log.Logger
}

// NewFallbackSource 创建带备用列表的数据源；primary 为 nil 时直接使用备用列表
func NewFallbackSource(primary, fallback Source) *FallbackSource {
	return &FallbackSource{
		Primary:  primary,
		Fallback: fallback,
		logger:   log.WithPrefix("FallbackSource"),
	}
}

// Fetch 加载影片列表，结果中标明是否降级
//
// 只有主数据源和备用数据源都失败时才返回错误。
func (s *FallbackSource) Fetch(ctx context.Context) (Result, error) {
	var primaryErr error
	if s.Primary != nil {
		items, err := s.Primary.Load(ctx)
		if err == nil && len(items) > 0 {
			return Result{Items: items}, nil
		}
		if err == nil {
			err = ErrNoItems
		}
		if errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		primaryErr = err
		s.logger.Warn("primary source unavailable, using fallback list", "err", err)
	}

	if s.Fallback == nil {
		if primaryErr == nil {
			primaryErr = ErrNoItems
		}
		return Result{Err: primaryErr}, fmt.Errorf("no fallback source: %w", primaryErr)
	}
	items, err := s.Fallback.Load(ctx)
	if err != nil {
		return Result{Err: primaryErr}, fmt.Errorf("fallback source failed: %w", errors.Join(primaryErr, err))
	}
	return Result{Items: items, Degraded: s.Primary != nil, Err: primaryErr}, nil
}

// Load 实现 Source 接口，丢弃降级标记
func (s *FallbackSource) Load(ctx context.Context) ([]components.Item, error) {
	result, err := s.Fetch(ctx)
	return result.Items, err
}
