package components

import (
	"time"

	"github.com/gonewx/cinereel/pkg/timeline"
	"github.com/gonewx/cinereel/pkg/utils"
)

// SequencePhase 开场揭示动画的阶段
type SequencePhase string

const (
	// PhaseIdle 等待测量结果
	PhaseIdle SequencePhase = "idle"
	// PhaseReveal 描入：描边偏移从路径总长减到 0
	PhaseReveal SequencePhase = "reveal"
	// PhaseHold 描入完成后的停顿，同时开始放大
	PhaseHold SequencePhase = "hold"
	// PhaseZoomOut 描出：描边偏移从 0 减到负的路径总长
	PhaseZoomOut SequencePhase = "zoomOut"
	// PhaseComplete 已交出控制权，数值冻结
	PhaseComplete SequencePhase = "complete"
)

// IntroRevealComponent 开场揭示动画的状态
// 阶段严格按 Idle → Reveal → Hold → ZoomOut → Complete 推进
type IntroRevealComponent struct {
	Phase SequencePhase

	// Layout 首次有效的测量结果
	Layout utils.LayoutBox
	// Geometry 由 Layout 推导的几何量（Scheduled 为 true 后有效）
	Geometry utils.GeometryProfile

	// Scheduled 阶段表是否已调度，保证每次挂载只调度一次
	Scheduled bool
	// StartedAt 几何量就绪的时间（调度器时钟）
	StartedAt time.Duration

	// TraceOffset 描边偏移量：未描出的路径长度
	TraceOffset float64
	// ZoomScale 遮罩缩放
	ZoomScale float64

	// Trace/Zoom 两个属性的阶段表
	Trace *timeline.Timeline
	Zoom  *timeline.Timeline

	// IsCompleted 是否已发出完成信号
	IsCompleted bool
}
