package items

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StatusError 后端返回了非 200 状态码
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// shouldRetry 连接失败和 5xx 值得重试；4xx、解码失败和上下文取消立即放弃
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// withBackoff 反复调用 fetch，直到成功、遇到不值得重试的错误或用完 attempts 次
// 每次失败后的等待时间翻倍
func withBackoff(ctx context.Context, attempts int, wait time.Duration, fetch func() error) error {
	for attempt := 1; ; attempt++ {
		err := fetch()
		if err == nil || attempt >= attempts || !shouldRetry(err) {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
