package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/systems"
	"github.com/gonewx/cinereel/pkg/utils"
)

// glyphStrokeRatio 描边宽度与字形高度之比
const glyphStrokeRatio = 0.25

// IntroScene 开场揭示动画场景
//
// 第一次 Update 时把配置中的字形尺寸作为测量结果交给 IntroRevealSystem，
// 之后每帧按快照绘制可见的描边段。交接时间到达后调用 onComplete。
type IntroScene struct {
	entityManager *ecs.EntityManager
	introSystem   *systems.IntroRevealSystem
	cfg           config.IntroConfig
	darkMode      func() bool

	width, height int
	measured      bool
}

// NewIntroScene 创建开场场景
//
// 参数：
//   - cfg: 阶段时间表和字形尺寸
//   - darkMode: 返回当前是否为深色主题，可为 nil
//   - onComplete: 交出控制权时调用（最多一次）
func NewIntroScene(cfg config.IntroConfig, darkMode func() bool, onComplete func()) *IntroScene {
	em := ecs.NewEntityManager()
	return &IntroScene{
		entityManager: em,
		introSystem:   systems.NewIntroRevealSystem(em, cfg, onComplete),
		cfg:           cfg,
		darkMode:      darkMode,
		width:         config.DefaultWindowWidth,
		height:        config.DefaultWindowHeight,
	}
}

// Update 推进动画；首帧提交字形测量结果
func (s *IntroScene) Update(deltaTime float64) {
	if !s.measured {
		s.introSystem.Measure(s.cfg.GlyphWidth, s.cfg.GlyphHeight)
		s.measured = true
	}
	s.introSystem.Update(deltaTime)
}

// Draw 绘制背景和当前可见的描边
func (s *IntroScene) Draw(screen *ebiten.Image) {
	palette := PaletteFor(s.darkMode != nil && s.darkMode())
	screen.Fill(palette.Background)

	snap := s.introSystem.Snapshot()
	if !snap.Measured {
		return
	}

	strokeWidth := float32(snap.Geometry.Height * glyphStrokeRatio * snap.ZoomScale)
	cx, cy := float64(s.width)/2, float64(s.height)/2
	for _, seg := range glyphSegments(snap, cx, cy) {
		vector.StrokeLine(screen,
			float32(seg.From.X), float32(seg.From.Y),
			float32(seg.To.X), float32(seg.To.Y),
			strokeWidth, GlyphColor, true)
	}
}

// Resize 记录逻辑屏幕尺寸，字形始终居中
func (s *IntroScene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Teardown 取消所有动画计时器并释放场景实体
func (s *IntroScene) Teardown() {
	s.introSystem.Teardown()
	destroyAll[*components.IntroRevealComponent](s.entityManager)
}

// glyphSegments 返回屏幕坐标系下可见的描边段
// 字形以 (cx, cy) 为中心，并以中心为原点按 ZoomScale 缩放
func glyphSegments(snap systems.IntroSnapshot, cx, cy float64) []utils.Segment {
	geometry := snap.Geometry
	start, end, visible := utils.TraceSpan(snap.TraceOffset, geometry.TotalPathLength)
	if !visible {
		return nil
	}

	toScreen := func(p utils.Point) utils.Point {
		return utils.Point{
			X: cx + (p.X-geometry.Width/2)*snap.ZoomScale,
			Y: cy + (p.Y-geometry.Height/2)*snap.ZoomScale,
		}
	}

	segments := utils.ClipPath(utils.GlyphPath(geometry), start, end)
	for i, seg := range segments {
		segments[i] = utils.Segment{From: toScreen(seg.From), To: toScreen(seg.To)}
	}
	return segments
}
