package systems

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/utils"
)

// 翻页方向
const (
	DirectionPrev = -1 // 向前：偏移增大，内容右移
	DirectionNone = 0
	DirectionNext = 1 // 向后：偏移减小，内容左移
)

// CarouselSystem 有界轮播导航。
//
// 每次请求移动整整一个条目宽度：目标偏移落在有效范围内才接受，
// 否则请求被静默拒绝，偏移保持不变（不会贴边对齐）。被接受的目标通过
// 弹簧动画过渡；动画过程中的新请求基于最近接受的目标计算，连续点击会
// 叠加到边界为止。
type CarouselSystem struct {
	entityManager  *ecs.EntityManager
	spring         utils.SpringConfig
	carouselEntity ecs.EntityID
	tornDown       bool
	logger         *log.Logger
}

// NewCarouselSystem 创建轮播系统，初始偏移让第一个条目居中
//
// 参数：
//   - em: 实体管理器
//   - cfg: 布局与弹簧参数（应已通过 Validate）
//   - viewportWidth: 视口宽度（像素）
func NewCarouselSystem(em *ecs.EntityManager, cfg config.CarouselConfig, viewportWidth float64) *CarouselSystem {
	cs := &CarouselSystem{
		entityManager: em,
		spring:        cfg.Spring(),
		logger:        log.WithPrefix("CarouselSystem"),
	}

	initialOffset := (viewportWidth - cfg.ItemWidth) / 2
	cs.carouselEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.carouselEntity, &components.CarouselComponent{
		Offset:        initialOffset,
		Target:        initialOffset,
		ItemWidth:     cfg.ItemWidth,
		ItemMargin:    cfg.ItemMargin,
		ViewportWidth: viewportWidth,
		InitialOffset: initialOffset,
	})

	return cs
}

// SetItemCount 更新条目数量
//
// 条目减少导致当前目标越界时，目标退回到最后一个有效的整页位置并以弹簧过渡。
func (cs *CarouselSystem) SetItemCount(n int) {
	carouselComp, ok := cs.component()
	if !ok || cs.tornDown {
		return
	}
	carouselComp.ItemCount = max(n, 0)

	if target := cs.fitTarget(carouselComp, cs.Index()); target != carouselComp.Target {
		carouselComp.Target = target
		carouselComp.IsAnimating = true
	}

	maxRight, maxLeft := carouselComp.Bounds()
	cs.logger.Debug("item count changed",
		"count", carouselComp.ItemCount,
		"target", carouselComp.Target,
		"maxRight", maxRight,
		"maxLeft", maxLeft)
}

// fitTarget 返回 index 对应的目标偏移；越界时逐个回退索引，最多退到第一个条目
func (cs *CarouselSystem) fitTarget(carouselComp *components.CarouselComponent, index int) float64 {
	target := targetAt(carouselComp, index)
	for index > 0 && !carouselComp.InBounds(target) {
		index--
		target = targetAt(carouselComp, index)
	}
	return target
}

// targetAt 第 index 个条目居中时的偏移
// 每次都从 InitialOffset 重新计算，连续翻页不会累积浮点误差
func targetAt(carouselComp *components.CarouselComponent, index int) float64 {
	return carouselComp.InitialOffset - float64(index)*carouselComp.ItemExtent()
}

// Advance 按方向翻一页
//
// direction 取符号：-1 向前，+1 向后，0 不做任何事。
// 返回请求是否被接受；越界请求不是错误，只是不改变任何状态。
func (cs *CarouselSystem) Advance(direction int) bool {
	carouselComp, ok := cs.component()
	if !ok || cs.tornDown {
		return false
	}

	switch {
	case direction > 0:
		direction = DirectionNext
	case direction < 0:
		direction = DirectionPrev
	default:
		return false
	}

	candidate := targetAt(carouselComp, cs.Index()+direction)
	if !carouselComp.InBounds(candidate) {
		maxRight, maxLeft := carouselComp.Bounds()
		cs.logger.Debug("advance rejected",
			"direction", direction,
			"candidate", candidate,
			"maxRight", maxRight,
			"maxLeft", maxLeft)
		return false
	}

	carouselComp.Target = candidate
	carouselComp.IsAnimating = true
	cs.logger.Debug("advance accepted", "direction", direction, "target", candidate)
	return true
}

// Update 推进弹簧动画，静止后精确对齐到目标
func (cs *CarouselSystem) Update(dt float64) {
	carouselComp, ok := cs.component()
	if !ok || cs.tornDown || !carouselComp.IsAnimating {
		return
	}

	state := cs.spring.Step(utils.SpringState{
		Value:    carouselComp.Offset,
		Velocity: carouselComp.Velocity,
	}, carouselComp.Target, dt)

	if cs.spring.Settled(state, carouselComp.Target) {
		carouselComp.Offset = carouselComp.Target
		carouselComp.Velocity = 0
		carouselComp.IsAnimating = false
		return
	}
	carouselComp.Offset = state.Value
	carouselComp.Velocity = state.Velocity
}

// Resize 视口宽度变化时重新居中
//
// 保留当前条目索引；新视口下该索引越界时退到最后一个有效索引。
// 偏移直接跳到新位置，不播放动画。
func (cs *CarouselSystem) Resize(viewportWidth float64) {
	carouselComp, ok := cs.component()
	if !ok || cs.tornDown || viewportWidth == carouselComp.ViewportWidth {
		return
	}

	index := cs.Index()
	carouselComp.ViewportWidth = viewportWidth
	carouselComp.InitialOffset = (viewportWidth - carouselComp.ItemWidth) / 2

	target := cs.fitTarget(carouselComp, index)
	carouselComp.Target = target
	carouselComp.Offset = target
	carouselComp.Velocity = 0
	carouselComp.IsAnimating = false
	cs.logger.Debug("viewport resized", "width", viewportWidth, "index", cs.Index())
}

// Teardown 停止弹簧动画，之后不再修改任何状态
func (cs *CarouselSystem) Teardown() {
	if cs.tornDown {
		return
	}
	cs.tornDown = true
	if carouselComp, ok := cs.component(); ok {
		cs.logger.Debug("carousel torn down", "offset", carouselComp.Offset, "target", carouselComp.Target)
	}
}

// Offset 返回当前水平平移量
func (cs *CarouselSystem) Offset() float64 {
	if carouselComp, ok := cs.component(); ok {
		return carouselComp.Offset
	}
	return 0
}

// Target 返回最近接受的目标偏移
func (cs *CarouselSystem) Target() float64 {
	if carouselComp, ok := cs.component(); ok {
		return carouselComp.Target
	}
	return 0
}

// Bounds 返回偏移量的有效范围 [maxRight, maxLeft]
func (cs *CarouselSystem) Bounds() (maxRight, maxLeft float64) {
	if carouselComp, ok := cs.component(); ok {
		return carouselComp.Bounds()
	}
	return 0, 0
}

// IsAnimating 返回弹簧是否仍在运动
func (cs *CarouselSystem) IsAnimating() bool {
	carouselComp, ok := cs.component()
	return ok && carouselComp.IsAnimating
}

// Index 返回目标偏移对应的条目索引（居中的条目）
func (cs *CarouselSystem) Index() int {
	carouselComp, ok := cs.component()
	if !ok || carouselComp.ItemExtent() <= 0 {
		return 0
	}
	return int(math.Round((carouselComp.InitialOffset - carouselComp.Target) / carouselComp.ItemExtent()))
}

// SlotX 返回第 i 个条目左边缘的屏幕X坐标（基于当前动画偏移）
func (cs *CarouselSystem) SlotX(i int) float64 {
	carouselComp, ok := cs.component()
	if !ok {
		return 0
	}
	return carouselComp.Offset + float64(i)*carouselComp.ItemExtent()
}

// VisibleRange 返回与视口相交的条目索引区间 [first, last)
func (cs *CarouselSystem) VisibleRange() (first, last int) {
	carouselComp, ok := cs.component()
	if !ok || carouselComp.ItemCount == 0 {
		return 0, 0
	}

	extent := carouselComp.ItemExtent()
	first = int(math.Floor((-carouselComp.Offset - carouselComp.ItemWidth) / extent))
	last = int(math.Ceil((carouselComp.ViewportWidth-carouselComp.Offset)/extent)) + 1

	first = max(first, 0)
	last = min(last, carouselComp.ItemCount)
	for first < last && cs.SlotX(first)+carouselComp.ItemWidth <= 0 {
		first++
	}
	for last > first && cs.SlotX(last-1) >= carouselComp.ViewportWidth {
		last--
	}
	return first, last
}

func (cs *CarouselSystem) component() (*components.CarouselComponent, bool) {
	return ecs.GetComponent[*components.CarouselComponent](cs.entityManager, cs.carouselEntity)
}
