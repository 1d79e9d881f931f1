package systems

import (
	"math"
	"testing"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
)

const introTolerance = 1e-6

// newTestIntro 创建使用默认时间表的开场动画系统，并统计完成回调次数
func newTestIntro(t *testing.T) (*IntroRevealSystem, *int) {
	t.Helper()
	completions := 0
	cfg := config.DefaultAppConfig().Intro
	system := NewIntroRevealSystem(ecs.NewEntityManager(), cfg, func() { completions++ })
	return system, &completions
}

// stepFrames 以 60 FPS 推进 n 帧
func stepFrames(system interface{ Update(float64) }, n int) {
	for i := 0; i < n; i++ {
		system.Update(1.0 / 60.0)
	}
}

// TestNewIntroRevealSystem 测试系统创建后的初始状态
func TestNewIntroRevealSystem(t *testing.T) {
	system, completions := newTestIntro(t)

	snap := system.Snapshot()
	if snap.Phase != components.PhaseIdle {
		t.Errorf("Expected initial phase idle, got %s", snap.Phase)
	}
	if snap.ZoomScale != 1 {
		t.Errorf("Expected initial zoom 1, got %v", snap.ZoomScale)
	}
	if snap.Measured || snap.PhaseComplete {
		t.Error("Expected unmeasured and incomplete intro")
	}
	if *completions != 0 {
		t.Error("Completion must not fire on mount")
	}

	introComp, ok := ecs.GetComponent[*components.IntroRevealComponent](system.entityManager, system.introEntity)
	if !ok {
		t.Fatal("Expected IntroRevealComponent on intro entity")
	}
	if introComp.Scheduled {
		t.Error("Phases must not be scheduled before measurement")
	}
}

// TestIntroRevealSystem_IgnoresUnmeasuredLayout 未测量的包围盒不触发调度
func TestIntroRevealSystem_IgnoresUnmeasuredLayout(t *testing.T) {
	system, _ := newTestIntro(t)

	for _, box := range [][2]float64{{0, 0}, {0, 600}, {300, 0}, {-5, 10}} {
		system.Measure(box[0], box[1])
	}
	stepFrames(system, 30)

	if system.Phase() != components.PhaseIdle {
		t.Errorf("Expected phase idle while unmeasured, got %s", system.Phase())
	}
	if system.Snapshot().Measured {
		t.Error("Expected no geometry for zero/negative measurements")
	}
}

// TestIntroRevealSystem_TallGlyphGeometry 300x600 的字形：对角线 ≈ 670.8，路径 ≈ 1870.8
func TestIntroRevealSystem_TallGlyphGeometry(t *testing.T) {
	system, _ := newTestIntro(t)
	system.Measure(300, 600)

	snap := system.Snapshot()
	if math.Abs(snap.Geometry.Diagonal-670.82) > 0.01 {
		t.Errorf("Expected diagonal ≈ 670.82, got %v", snap.Geometry.Diagonal)
	}
	if math.Abs(snap.Geometry.TotalPathLength-1870.82) > 0.01 {
		t.Errorf("Expected path length ≈ 1870.82, got %v", snap.Geometry.TotalPathLength)
	}
	if snap.TraceOffset != snap.Geometry.TotalPathLength {
		t.Errorf("Trace offset should start at the full path length, got %v", snap.TraceOffset)
	}
	if snap.Phase != components.PhaseReveal {
		t.Errorf("Expected reveal phase right after measurement, got %s", snap.Phase)
	}
}

// TestIntroRevealSystem_PhaseTiming 描入在 1000ms 完成，描出在 2400ms 完成
func TestIntroRevealSystem_PhaseTiming(t *testing.T) {
	system, _ := newTestIntro(t)
	system.Measure(300, 600)
	length := system.Snapshot().Geometry.TotalPathLength

	system.Update(0.5)
	if system.Phase() != components.PhaseReveal {
		t.Errorf("Expected reveal at 500ms, got %s", system.Phase())
	}
	// 缓出：中点已描入 75%
	if want := length * 0.25; math.Abs(system.TraceOffset()-want) > introTolerance {
		t.Errorf("At 500ms expected trace offset %v, got %v", want, system.TraceOffset())
	}

	system.Update(0.5)
	if math.Abs(system.TraceOffset()) > introTolerance {
		t.Errorf("At 1000ms expected trace offset 0, got %v", system.TraceOffset())
	}
	if system.Phase() != components.PhaseHold {
		t.Errorf("Expected hold at 1000ms, got %s", system.Phase())
	}
	if system.ZoomScale() != 1 {
		t.Errorf("Zoom starts at 1000ms, expected 1, got %v", system.ZoomScale())
	}

	system.Update(0.3)
	if math.Abs(system.TraceOffset()) > introTolerance {
		t.Errorf("Trace offset should be held at 0 during hold, got %v", system.TraceOffset())
	}
	if system.ZoomScale() <= 1 {
		t.Error("Zoom should be growing during hold")
	}

	system.Update(0.1)
	if system.Phase() != components.PhaseZoomOut {
		t.Errorf("Expected zoomOut at 1400ms, got %s", system.Phase())
	}

	system.Update(1.0)
	if math.Abs(system.TraceOffset()+length) > introTolerance {
		t.Errorf("At 2400ms expected trace offset %v, got %v", -length, system.TraceOffset())
	}
	// 缩放进度 1400/2000 = 0.7，缓入缓出后为 0.82
	if math.Abs(system.ZoomScale()-1.82) > introTolerance {
		t.Errorf("At 2400ms expected zoom 1.82, got %v", system.ZoomScale())
	}
	if system.IsCompleted() {
		t.Error("Intro must not complete at 2400ms")
	}
}

// TestIntroRevealSystem_PhaseOrder 阶段严格按顺序推进，且每个阶段只出现一次
func TestIntroRevealSystem_PhaseOrder(t *testing.T) {
	system, _ := newTestIntro(t)
	seen := []components.SequencePhase{system.Phase()}

	system.Measure(120, 160)
	for i := 0; i < 200; i++ {
		if p := system.Phase(); p != seen[len(seen)-1] {
			seen = append(seen, p)
		}
		system.Update(1.0 / 60.0)
	}
	if p := system.Phase(); p != seen[len(seen)-1] {
		seen = append(seen, p)
	}

	want := []components.SequencePhase{
		components.PhaseIdle,
		components.PhaseReveal,
		components.PhaseHold,
		components.PhaseZoomOut,
		components.PhaseComplete,
	}
	if len(seen) != len(want) {
		t.Fatalf("Expected phases %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Phase %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

// TestIntroRevealSystem_FixedHandoff 交接时间固定为 2500ms，与路径长度无关
func TestIntroRevealSystem_FixedHandoff(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"tiny glyph", 1, 1},
		{"phone glyph", 90, 120},
		{"huge glyph", 3000, 6000},
		{"never measured", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, completions := newTestIntro(t)
			system.Measure(tt.width, tt.height)

			system.Update(2.499)
			if system.IsCompleted() || *completions != 0 {
				t.Fatal("Intro completed before 2500ms")
			}

			system.Update(0.001)
			if !system.IsCompleted() {
				t.Fatal("Intro should complete at exactly 2500ms")
			}
			if *completions != 1 {
				t.Errorf("Expected exactly one completion, got %d", *completions)
			}

			stepFrames(system, 120)
			if *completions != 1 {
				t.Errorf("Completion fired again after handoff: %d", *completions)
			}
		})
	}
}

// TestIntroRevealSystem_FrameDrivenHandoff 60 FPS 下第 150 帧交出控制权
func TestIntroRevealSystem_FrameDrivenHandoff(t *testing.T) {
	system, completions := newTestIntro(t)
	system.Measure(90, 120)

	stepFrames(system, 149)
	if system.IsCompleted() {
		t.Fatalf("Intro completed early at %.4fs", system.Elapsed())
	}

	stepFrames(system, 1)
	if !system.IsCompleted() || *completions != 1 {
		t.Fatal("Intro should complete on the frame crossing 2500ms")
	}
	if system.Elapsed() < 2.5 {
		t.Errorf("Completion observed at %.6fs, before 2.5s", system.Elapsed())
	}
}

// TestIntroRevealSystem_FreezesOnComplete 完成后数值冻结在交接时刻
func TestIntroRevealSystem_FreezesOnComplete(t *testing.T) {
	system, _ := newTestIntro(t)
	system.Measure(300, 600)
	length := system.Snapshot().Geometry.TotalPathLength

	system.Update(2.5)
	frozen := system.Snapshot()

	if frozen.Phase != components.PhaseComplete {
		t.Errorf("Expected complete phase, got %s", frozen.Phase)
	}
	if math.Abs(frozen.TraceOffset+length) > introTolerance {
		t.Errorf("Expected frozen trace offset %v, got %v", -length, frozen.TraceOffset)
	}
	// 缩放进度 1500/2000 = 0.75，缓入缓出后为 0.875
	if math.Abs(frozen.ZoomScale-1.875) > introTolerance {
		t.Errorf("Expected frozen zoom 1.875, got %v", frozen.ZoomScale)
	}

	system.Update(5)
	system.Measure(10, 10)
	if system.Snapshot() != frozen {
		t.Errorf("State changed after completion: %+v -> %+v", frozen, system.Snapshot())
	}
}

// TestIntroRevealSystem_NotRestartable 调度后再次测量不会重新调度
func TestIntroRevealSystem_NotRestartable(t *testing.T) {
	system, _ := newTestIntro(t)
	system.Measure(300, 600)
	original := system.Snapshot().Geometry

	system.Update(0.5)
	system.Measure(100, 100)
	system.Measure(300, 600)

	introComp, _ := ecs.GetComponent[*components.IntroRevealComponent](system.entityManager, system.introEntity)
	if introComp.Geometry != original {
		t.Errorf("Geometry changed after scheduling: %+v", introComp.Geometry)
	}
	if introComp.StartedAt != 0 {
		t.Errorf("Schedule restarted at %v", introComp.StartedAt)
	}

	system.Update(0.5)
	if math.Abs(system.TraceOffset()) > introTolerance {
		t.Errorf("Original schedule should finish reveal at 1000ms, trace offset %v", system.TraceOffset())
	}
}

// TestIntroRevealSystem_LateMeasurement 阶段相对测量时刻，交接相对挂载时刻
func TestIntroRevealSystem_LateMeasurement(t *testing.T) {
	system, completions := newTestIntro(t)

	system.Update(0.3)
	system.Measure(90, 120)

	introComp, _ := ecs.GetComponent[*components.IntroRevealComponent](system.entityManager, system.introEntity)
	if introComp.StartedAt.Milliseconds() != 300 {
		t.Errorf("Expected t0 = 300ms, got %v", introComp.StartedAt)
	}

	system.Update(1.0)
	if math.Abs(system.TraceOffset()) > introTolerance {
		t.Errorf("Reveal should finish 1000ms after measurement, trace offset %v", system.TraceOffset())
	}

	system.Update(1.2)
	if !system.IsCompleted() || *completions != 1 {
		t.Error("Handoff stays at 2500ms after mount regardless of measurement time")
	}
}

// TestIntroRevealSystem_TeardownMidReveal 描入中途卸载后不再有任何状态变化
func TestIntroRevealSystem_TeardownMidReveal(t *testing.T) {
	system, completions := newTestIntro(t)
	system.Measure(300, 600)

	system.Update(0.5)
	before := system.Snapshot()

	system.Teardown()
	if !system.scheduler.Stopped() || system.scheduler.Pending() != 0 {
		t.Errorf("Teardown should drop every timer, %d pending", system.scheduler.Pending())
	}
	system.Update(0.1)
	stepFrames(system, 300)
	system.Measure(50, 50)
	system.Update(10)

	if after := system.Snapshot(); after != before {
		t.Errorf("State mutated after teardown: %+v -> %+v", before, after)
	}
	if *completions != 0 {
		t.Errorf("Completion fired after teardown: %d", *completions)
	}
	if system.Phase() != components.PhaseReveal {
		t.Errorf("Phase should stay reveal after teardown, got %s", system.Phase())
	}

	// 重复卸载是安全的
	system.Teardown()
}

// TestIntroRevealSystem_TeardownBeforeMeasurement 测量前卸载，完成回调同样不会触发
func TestIntroRevealSystem_TeardownBeforeMeasurement(t *testing.T) {
	system, completions := newTestIntro(t)
	system.Teardown()
	system.Measure(90, 120)
	system.Update(3)

	if system.Snapshot().Measured {
		t.Error("Measurement accepted after teardown")
	}
	if *completions != 0 {
		t.Error("Completion fired after teardown")
	}
}
