package systems

import (
	"github.com/charmbracelet/log"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/timeline"
	"github.com/gonewx/cinereel/pkg/utils"
)

// IntroSnapshot 渲染层读取的开场动画状态
type IntroSnapshot struct {
	Phase         components.SequencePhase
	TraceOffset   float64
	ZoomScale     float64
	PhaseComplete bool
	Geometry      utils.GeometryProfile
	// Measured 几何量是否已就绪
	Measured bool
}

// IntroRevealSystem 开场揭示动画的阶段调度器。
//
// 流程：等待测量 → 描入 → 停顿（开始放大）→ 描出 → 交出控制权。
// 描边动画的数值由测量出的路径长度决定，交出控制权的时间固定为挂载后
// HandoffMs，与几何量无关；即使永远没有测量结果也会按时完成。
type IntroRevealSystem struct {
	entityManager *ecs.EntityManager
	config        config.IntroConfig
	scheduler     *timeline.Scheduler
	geometryCache utils.GeometryCache
	introEntity   ecs.EntityID
	onComplete    func()
	tornDown      bool
	logger        *log.Logger
}

// NewIntroRevealSystem 创建开场动画系统，并立即启动固定时长的完成计时器。
//
// 参数：
//   - em: 实体管理器
//   - cfg: 阶段时间表（应已通过 Validate）
//   - onComplete: 完成回调，每次挂载最多调用一次，可为 nil
func NewIntroRevealSystem(em *ecs.EntityManager, cfg config.IntroConfig, onComplete func()) *IntroRevealSystem {
	irs := &IntroRevealSystem{
		entityManager: em,
		config:        cfg,
		scheduler:     timeline.NewScheduler(),
		onComplete:    onComplete,
		logger:        log.WithPrefix("IntroRevealSystem"),
	}

	irs.introEntity = em.CreateEntity()
	ecs.AddComponent(em, irs.introEntity, &components.IntroRevealComponent{
		Phase:       components.PhaseIdle,
		TraceOffset: 0,
		ZoomScale:   1,
	})

	irs.scheduler.After(cfg.Duration(cfg.HandoffMs), irs.complete)
	irs.logger.Debug("intro mounted", "handoff", cfg.Duration(cfg.HandoffMs))

	return irs
}

// Measure 接收字形的测量结果
//
// 任一维度非正数视为尚未测量；阶段表调度后再次收到测量结果会被忽略。
func (irs *IntroRevealSystem) Measure(width, height float64) {
	introComp, ok := irs.component()
	if !ok || irs.tornDown || introComp.IsCompleted || introComp.Scheduled {
		return
	}

	box := utils.LayoutBox{Width: width, Height: height}
	profile, ok := irs.geometryCache.Resolve(box)
	if !ok {
		return
	}

	introComp.Layout = box
	introComp.Geometry = profile
	irs.schedule(introComp)
}

// schedule 以当前时刻为 t0 构建阶段表并注册阶段切换计时器
func (irs *IntroRevealSystem) schedule(introComp *components.IntroRevealComponent) {
	cfg := irs.config
	length := introComp.Geometry.TotalPathLength
	revealEase, zoomOutEase, zoomEase := cfg.Easings()

	revealEnd := cfg.Duration(cfg.RevealMs)
	zoomOutStart := revealEnd + cfg.Duration(cfg.HoldMs)

	introComp.Trace = timeline.NewTimeline(length,
		timeline.Track{
			Name:     string(components.PhaseReveal),
			Start:    0,
			Duration: revealEnd,
			From:     length,
			To:       0,
			Easing:   revealEase,
		},
		timeline.Track{
			Name:     string(components.PhaseZoomOut),
			Start:    zoomOutStart,
			Duration: cfg.Duration(cfg.ZoomOutMs),
			From:     0,
			To:       -length,
			Easing:   zoomOutEase,
		},
	)
	introComp.Zoom = timeline.NewTimeline(1,
		timeline.Track{
			Name:     "zoom",
			Start:    cfg.Duration(cfg.ZoomDelayMs),
			Duration: cfg.Duration(cfg.ZoomDurationMs),
			From:     1,
			To:       cfg.ZoomTarget,
			Easing:   zoomEase,
		},
	)

	introComp.Scheduled = true
	introComp.StartedAt = irs.scheduler.Now()
	introComp.TraceOffset = length
	irs.setPhase(introComp, components.PhaseReveal)

	irs.scheduler.After(revealEnd, func() {
		irs.setPhase(introComp, components.PhaseHold)
	})
	irs.scheduler.After(zoomOutStart, func() {
		irs.setPhase(introComp, components.PhaseZoomOut)
	})

	irs.logger.Info("intro scheduled",
		"width", introComp.Geometry.Width,
		"height", introComp.Geometry.Height,
		"pathLength", length,
		"t0", introComp.StartedAt)

	// 测量来得太晚时描出阶段会在交接时被截断
	if end, handoff := introComp.StartedAt+introComp.Trace.End(), cfg.Duration(cfg.HandoffMs); end > handoff {
		irs.logger.Debug("sequence will be cut at handoff", "sequenceEnd", end, "handoff", handoff)
	}
}

// Update 推进调度器时钟并重新计算描边偏移和缩放
func (irs *IntroRevealSystem) Update(dt float64) {
	if irs.tornDown || irs.scheduler.Stopped() {
		return
	}
	irs.scheduler.Advance(timeline.Seconds(dt))

	introComp, ok := irs.component()
	if !ok || introComp.IsCompleted || !introComp.Scheduled {
		return
	}
	irs.sample(introComp)
}

// sample 按调度器当前时间计算属性值
func (irs *IntroRevealSystem) sample(introComp *components.IntroRevealComponent) {
	elapsed := irs.scheduler.Now() - introComp.StartedAt
	introComp.TraceOffset = introComp.Trace.Value(elapsed)
	introComp.ZoomScale = introComp.Zoom.Value(elapsed)
}

// setPhase 切换阶段（只允许向前推进）
func (irs *IntroRevealSystem) setPhase(introComp *components.IntroRevealComponent, next components.SequencePhase) {
	if introComp.IsCompleted {
		return
	}
	irs.logger.Debug("phase transition", "from", introComp.Phase, "to", next, "at", irs.scheduler.Now())
	introComp.Phase = next
}

// complete 在固定的交接时间触发：冻结数值、停止所有计时器并通知观察者
func (irs *IntroRevealSystem) complete() {
	introComp, ok := irs.component()
	if !ok || irs.tornDown || introComp.IsCompleted {
		return
	}

	if introComp.Scheduled {
		irs.sample(introComp)
	} else {
		irs.logger.Warn("intro completed without a layout measurement")
	}

	irs.setPhase(introComp, components.PhaseComplete)
	introComp.IsCompleted = true
	irs.scheduler.Stop()

	irs.logger.Info("intro completed", "at", irs.scheduler.Now())

	if irs.onComplete != nil {
		irs.onComplete()
	}
}

// Teardown 取消所有未执行的计时器
// 之后 Update 和 Measure 不再修改任何状态，完成回调也不会触发
func (irs *IntroRevealSystem) Teardown() {
	if irs.tornDown {
		return
	}
	irs.tornDown = true
	pending := irs.scheduler.Pending()
	irs.scheduler.Stop()
	irs.logger.Debug("intro torn down", "at", irs.scheduler.Now(), "cancelledTimers", pending)
}

// Snapshot 返回渲染层使用的状态快照
func (irs *IntroRevealSystem) Snapshot() IntroSnapshot {
	introComp, ok := irs.component()
	if !ok {
		return IntroSnapshot{Phase: components.PhaseComplete, ZoomScale: 1, PhaseComplete: true}
	}
	return IntroSnapshot{
		Phase:         introComp.Phase,
		TraceOffset:   introComp.TraceOffset,
		ZoomScale:     introComp.ZoomScale,
		PhaseComplete: introComp.IsCompleted,
		Geometry:      introComp.Geometry,
		Measured:      introComp.Scheduled,
	}
}

// TraceOffset 返回当前描边偏移量
func (irs *IntroRevealSystem) TraceOffset() float64 {
	return irs.Snapshot().TraceOffset
}

// ZoomScale 返回当前缩放
func (irs *IntroRevealSystem) ZoomScale() float64 {
	return irs.Snapshot().ZoomScale
}

// Phase 返回当前阶段
func (irs *IntroRevealSystem) Phase() components.SequencePhase {
	return irs.Snapshot().Phase
}

// IsCompleted 返回是否已交出控制权
func (irs *IntroRevealSystem) IsCompleted() bool {
	return irs.Snapshot().PhaseComplete
}

// Elapsed 返回自挂载以来的调度器时间（秒）
func (irs *IntroRevealSystem) Elapsed() float64 {
	return irs.scheduler.Now().Seconds()
}

func (irs *IntroRevealSystem) component() (*components.IntroRevealComponent, bool) {
	return ecs.GetComponent[*components.IntroRevealComponent](irs.entityManager, irs.introEntity)
}
