package items

import (
	"context"
	"sync"
)

// Loader 在后台加载影片列表，帧循环通过 Poll 取回结果
//
// Start 和 Poll 都应在同一个帧循环中调用；加载本身在独立 goroutine 中进行。
type Loader struct {
	source  *FallbackSource
	results chan Result
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	loading bool
}

// NewLoader 创建加载器
func NewLoader(source *FallbackSource) *Loader {
	return &Loader{
		source:  source,
		results: make(chan Result, 1),
	}
}

// Start 开始一次加载；上一次加载尚未结束时会先取消它
func (l *Loader) Start(ctx context.Context) {
	l.Stop()

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.loading = true
	results := make(chan Result, 1)
	l.results = results

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		result, err := l.source.Fetch(ctx)
		if err != nil {
			result.Err = err
		}
		results <- result
	}()
}

// Poll 非阻塞地取回结果；ok 为 false 表示还没有新结果
// 两个数据源都失败时 result.Items 为空，result.Err 为完整错误
func (l *Loader) Poll() (result Result, ok bool) {
	select {
	case result = <-l.results:
		l.loading = false
		return result, true
	default:
		return Result{}, false
	}
}

// Loading 返回是否有尚未取回的加载
func (l *Loader) Loading() bool {
	return l.loading
}

// Stop 取消进行中的加载并等待 goroutine 退出
func (l *Loader) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.wg.Wait()
	l.loading = false
}
