package timeline

import (
	"sort"
	"time"
)

type timer struct {
	due time.Duration
	fn  func()
}

// Scheduler 帧驱动的计时器队列
//
// 不是并发安全的：所有调用都应来自同一个渲染循环。
type Scheduler struct {
	now     time.Duration
	timers  []timer
	stopped bool
}

// NewScheduler 创建一个时钟从 0 开始的调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回调度器的当前时间
// 在回调内部调用时返回该计时器的到期时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 在 delay 之后执行 fn
// 调度器已停止时不做任何事并返回 false
func (s *Scheduler) After(delay time.Duration, fn func()) bool {
	if s.stopped || fn == nil {
		return false
	}
	s.timers = append(s.timers, timer{due: s.now + max(delay, 0), fn: fn})
	// 同一时间到期的计时器按创建顺序执行
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].due < s.timers[j].due })
	return true
}

// Advance 将时钟推进 d，并按顺序执行所有到期的计时器
// 回调中新建的计时器如果也在本次推进范围内到期，同样会被执行
func (s *Scheduler) Advance(d time.Duration) {
	if s.stopped || d < 0 {
		return
	}
	target := s.now + d
	for !s.stopped && len(s.timers) > 0 && s.timers[0].due <= target {
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.due
		t.fn()
	}
	if !s.stopped {
		s.now = target
	}
}

// Stop 取消所有计时器，之后 After 和 Advance 都不再生效
func (s *Scheduler) Stop() {
	s.stopped = true
	s.timers = nil
}

// Stopped 返回调度器是否已停止
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Pending 返回尚未执行的计时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}
