package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
)

const carouselTolerance = 1e-9

// newTestCarousel 创建 375px 视口、默认 200+2*20 条目宽度的轮播
func newTestCarousel(t *testing.T, count int) *CarouselSystem {
	t.Helper()
	cs := NewCarouselSystem(ecs.NewEntityManager(), config.DefaultAppConfig().Carousel, 375)
	cs.SetItemCount(count)
	return cs
}

// settle 推进到弹簧静止，最多 10 秒
func settle(t *testing.T, cs *CarouselSystem) {
	t.Helper()
	for i := 0; i < 600 && cs.IsAnimating(); i++ {
		cs.Update(1.0 / 60.0)
	}
	if cs.IsAnimating() {
		t.Fatal("Spring did not come to rest within 10s")
	}
}

// TestNewCarouselSystem 初始偏移让第一个条目居中
func TestNewCarouselSystem(t *testing.T) {
	cs := newTestCarousel(t, 10)

	if cs.Offset() != 87.5 || cs.Target() != 87.5 {
		t.Errorf("Expected initial offset 87.5, got offset=%v target=%v", cs.Offset(), cs.Target())
	}
	if cs.Index() != 0 {
		t.Errorf("Expected index 0, got %d", cs.Index())
	}
	if cs.IsAnimating() {
		t.Error("Carousel should start at rest")
	}

	maxRight, maxLeft := cs.Bounds()
	if math.Abs(maxRight+1937.5) > carouselTolerance || maxLeft != 87.5 {
		t.Errorf("Expected bounds [-1937.5, 87.5], got [%v, %v]", maxRight, maxLeft)
	}
}

// TestCarouselSystem_TenItemsStopsAtLastPage 10 个条目：连续 8 次向后翻页被接受，第 9 次被拒绝
func TestCarouselSystem_TenItemsStopsAtLastPage(t *testing.T) {
	cs := newTestCarousel(t, 10)

	for i := 1; i <= 8; i++ {
		if !cs.Advance(DirectionNext) {
			t.Fatalf("Advance #%d should be accepted", i)
		}
		settle(t, cs)
	}
	if math.Abs(cs.Target()+1832.5) > carouselTolerance {
		t.Fatalf("Expected target -1832.5 after 8 steps, got %v", cs.Target())
	}

	if cs.Advance(DirectionNext) {
		t.Error("Advance #9 should be rejected (candidate -2072.5 < -1937.5)")
	}
	if math.Abs(cs.Offset()+1832.5) > carouselTolerance {
		t.Errorf("Expected offset to stay at -1832.5, got %v", cs.Offset())
	}
	if cs.IsAnimating() {
		t.Error("Rejected request must not start an animation")
	}
	if cs.Index() != 8 {
		t.Errorf("Expected index 8, got %d", cs.Index())
	}
}

// TestCarouselSystem_RejectAtStart 第一个条目处向前翻页被拒绝
func TestCarouselSystem_RejectAtStart(t *testing.T) {
	cs := newTestCarousel(t, 10)

	if cs.Advance(DirectionPrev) {
		t.Error("Advance(-1) at the first item should be rejected")
	}
	if cs.Offset() != 87.5 || cs.Target() != 87.5 {
		t.Errorf("Offset changed on rejection: offset=%v target=%v", cs.Offset(), cs.Target())
	}
}

// TestCarouselSystem_RejectionIsExactNoOp 被拒绝的请求不改变任何状态（包括动画中）
func TestCarouselSystem_RejectionIsExactNoOp(t *testing.T) {
	cs := newTestCarousel(t, 3)

	// 3 个条目：maxRight = -(720-375)+87.5 = -257.5，只能向后翻一页
	if !cs.Advance(DirectionNext) {
		t.Fatal("First advance should be accepted")
	}
	for i := 0; i < 5; i++ {
		cs.Update(1.0 / 60.0)
	}

	carouselComp, _ := cs.component()
	before := *carouselComp

	if cs.Advance(DirectionNext) {
		t.Fatal("Second advance should be rejected (candidate -392.5 < -257.5)")
	}
	if *carouselComp != before {
		t.Errorf("State changed on rejection: %+v -> %+v", before, *carouselComp)
	}
}

// TestCarouselSystem_NarrowContent 内容窄于视口时所有请求都被拒绝
func TestCarouselSystem_NarrowContent(t *testing.T) {
	cs := newTestCarousel(t, 1)

	maxRight, maxLeft := cs.Bounds()
	if maxRight <= maxLeft {
		t.Fatalf("Expected empty range for narrow content, got [%v, %v]", maxRight, maxLeft)
	}

	for _, dir := range []int{DirectionNext, DirectionPrev, 3, -3} {
		if cs.Advance(dir) {
			t.Errorf("Advance(%d) should be rejected for narrow content", dir)
		}
	}
	if cs.Offset() != 87.5 {
		t.Errorf("Expected offset to stay at 87.5, got %v", cs.Offset())
	}
}

// TestCarouselSystem_ComposesMidTransition 动画中的请求基于最近接受的目标计算
func TestCarouselSystem_ComposesMidTransition(t *testing.T) {
	cs := newTestCarousel(t, 10)

	cs.Advance(DirectionNext)
	for i := 0; i < 3; i++ {
		cs.Update(1.0 / 60.0)
	}
	if !cs.IsAnimating() {
		t.Fatal("Expected spring still in motion")
	}

	if !cs.Advance(DirectionNext) {
		t.Fatal("Mid-transition advance should be accepted")
	}
	if math.Abs(cs.Target()+392.5) > carouselTolerance {
		t.Errorf("Expected target 87.5-2*240 = -392.5, got %v", cs.Target())
	}

	settle(t, cs)
	if cs.Offset() != cs.Target() {
		t.Errorf("Expected offset to snap to target at rest, got %v vs %v", cs.Offset(), cs.Target())
	}
	if cs.Index() != 2 {
		t.Errorf("Expected index 2, got %d", cs.Index())
	}
}

// TestCarouselSystem_DirectionSign 只使用方向的符号
func TestCarouselSystem_DirectionSign(t *testing.T) {
	tests := []struct {
		name       string
		direction  int
		accepted   bool
		wantTarget float64
	}{
		{"next", 1, true, -152.5},
		{"large next", 7, true, -152.5},
		{"none", 0, false, 87.5},
		{"prev at start", -4, false, 87.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := newTestCarousel(t, 10)
			if got := cs.Advance(tt.direction); got != tt.accepted {
				t.Errorf("Advance(%d) = %v, expected %v", tt.direction, got, tt.accepted)
			}
			if math.Abs(cs.Target()-tt.wantTarget) > carouselTolerance {
				t.Errorf("Expected target %v, got %v", tt.wantTarget, cs.Target())
			}
		})
	}
}

// TestCarouselSystem_RoundTripWithFractionalWidth 条目宽度无法精确表示时，翻到末尾再翻回仍能回到第一个条目
func TestCarouselSystem_RoundTripWithFractionalWidth(t *testing.T) {
	tests := []struct {
		name      string
		itemWidth float64
		viewport  float64
	}{
		{"99.9 in 375", 99.9, 375},
		{"133.7 in 390.2", 133.7, 390.2},
		{"150.05 in 412.7", 150.05, 412.7},
		{"200.1 in 375", 200.1, 375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultAppConfig().Carousel
			cfg.ItemWidth = tt.itemWidth
			cs := NewCarouselSystem(ecs.NewEntityManager(), cfg, tt.viewport)
			cs.SetItemCount(30)
			initial := cs.Target()

			forward := 0
			for cs.Advance(DirectionNext) {
				forward++
			}
			back := 0
			for cs.Advance(DirectionPrev) {
				back++
			}

			if forward == 0 || back != forward {
				t.Errorf("Went forward %d pages but back %d", forward, back)
			}
			if cs.Index() != 0 || cs.Target() != initial {
				t.Errorf("Expected index 0 at target %v, got index %d at %v", initial, cs.Index(), cs.Target())
			}
		})
	}
}

// TestCarouselSystem_RestingOffsetStaysInBounds 随机操作序列下，静止时偏移始终在有效范围内
func TestCarouselSystem_RestingOffsetStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(20250101))
	cs := newTestCarousel(t, 10)

	for step := 0; step < 400; step++ {
		switch r := rng.Intn(10); {
		case r < 7:
			cs.Advance(rng.Intn(3) - 1)
		case r < 9:
			for i := rng.Intn(20); i > 0; i-- {
				cs.Update(1.0 / 60.0)
			}
		default:
			cs.SetItemCount(2 + rng.Intn(12))
		}

		maxRight, maxLeft := cs.Bounds()
		if cs.Target() < maxRight-carouselTolerance || cs.Target() > maxLeft+carouselTolerance {
			t.Fatalf("step %d: target %v outside [%v, %v]", step, cs.Target(), maxRight, maxLeft)
		}
		if !cs.IsAnimating() && cs.Offset() != cs.Target() {
			t.Fatalf("step %d: resting offset %v differs from target %v", step, cs.Offset(), cs.Target())
		}
	}

	settle(t, cs)
	maxRight, maxLeft := cs.Bounds()
	if cs.Offset() < maxRight || cs.Offset() > maxLeft {
		t.Errorf("Resting offset %v outside [%v, %v]", cs.Offset(), maxRight, maxLeft)
	}
}

// TestCarouselSystem_SetItemCountShrink 条目减少时退回到最后一个有效位置
func TestCarouselSystem_SetItemCountShrink(t *testing.T) {
	cs := newTestCarousel(t, 10)
	for i := 0; i < 8; i++ {
		cs.Advance(DirectionNext)
	}
	settle(t, cs)

	// 5 个条目：maxRight = -(1200-375)+87.5 = -737.5，最后有效索引为 3
	cs.SetItemCount(5)
	if cs.Index() != 3 {
		t.Errorf("Expected index 3 after shrinking, got %d", cs.Index())
	}
	if math.Abs(cs.Target()+632.5) > carouselTolerance {
		t.Errorf("Expected target -632.5, got %v", cs.Target())
	}
	if !cs.IsAnimating() {
		t.Error("Shrinking should spring to the new target")
	}

	settle(t, cs)
	if cs.Offset() != cs.Target() {
		t.Errorf("Expected offset %v at rest, got %v", cs.Target(), cs.Offset())
	}
}

// TestCarouselSystem_SpringMotion 弹簧从起点运动并在静止后精确对齐
func TestCarouselSystem_SpringMotion(t *testing.T) {
	cs := newTestCarousel(t, 10)
	cs.Advance(DirectionNext)

	cs.Update(1.0 / 60.0)
	if cs.Offset() >= 87.5 {
		t.Errorf("Offset should move toward target after one frame, got %v", cs.Offset())
	}
	if cs.Offset() <= cs.Target() {
		t.Errorf("Offset should not reach target in a single frame, got %v", cs.Offset())
	}

	settle(t, cs)
	if cs.Offset() != -152.5 {
		t.Errorf("Expected exact offset -152.5 at rest, got %v", cs.Offset())
	}
}

// TestCarouselSystem_Resize 视口变化时保持索引并重新居中
func TestCarouselSystem_Resize(t *testing.T) {
	cs := newTestCarousel(t, 10)
	cs.Advance(DirectionNext)
	cs.Advance(DirectionNext)
	cs.Update(1.0 / 60.0)

	cs.Resize(800)

	// 新的初始偏移 (800-200)/2 = 300，索引 2 -> 300-480
	if cs.Index() != 2 {
		t.Errorf("Expected index 2 after resize, got %d", cs.Index())
	}
	if cs.Offset() != -180 || cs.Target() != -180 {
		t.Errorf("Expected offset and target -180, got %v / %v", cs.Offset(), cs.Target())
	}
	if cs.IsAnimating() {
		t.Error("Resize should snap without animation")
	}
}

// TestCarouselSystem_VisibleRange 可见条目区间
func TestCarouselSystem_VisibleRange(t *testing.T) {
	cs := newTestCarousel(t, 10)

	if first, last := cs.VisibleRange(); first != 0 || last != 2 {
		t.Errorf("Expected initial visible range [0, 2), got [%d, %d)", first, last)
	}

	cs.Advance(DirectionNext)
	settle(t, cs)
	if first, last := cs.VisibleRange(); first != 0 || last != 3 {
		t.Errorf("Expected visible range [0, 3) after one step, got [%d, %d)", first, last)
	}

	empty := newTestCarousel(t, 0)
	if first, last := empty.VisibleRange(); first != 0 || last != 0 {
		t.Errorf("Expected empty range without items, got [%d, %d)", first, last)
	}
}

// TestCarouselSystem_Teardown 卸载后不再修改状态
func TestCarouselSystem_Teardown(t *testing.T) {
	cs := newTestCarousel(t, 10)
	cs.Advance(DirectionNext)
	cs.Update(1.0 / 60.0)
	offset := cs.Offset()

	cs.Teardown()
	cs.Update(1.0 / 60.0)
	if cs.Offset() != offset {
		t.Errorf("Offset changed after teardown: %v -> %v", offset, cs.Offset())
	}
	if cs.Advance(DirectionNext) {
		t.Error("Advance should be rejected after teardown")
	}
	cs.Teardown()
}
