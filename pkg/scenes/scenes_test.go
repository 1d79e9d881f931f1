package scenes

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/systems"
	"github.com/gonewx/cinereel/pkg/utils"
)

// runeMeasure 每个字符宽 1 像素
func runeMeasure(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    float64
		maxLines int
		want     []string
	}{
		{"empty", "   ", 10, 3, nil},
		{"single line", "uma robo", 10, 3, []string{"uma robo"}},
		{"wraps", "uma robo naufragada aprende", 10, 3, []string{"uma robo", "naufragada", "aprende"}},
		{"long word stays whole", "supercalifragilistico ok", 5, 3, []string{"supercalifragilistico", "ok"}},
		{"truncated", "a b c d e f", 3, 2, []string{"a b", "c d..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.input, tt.width, tt.maxLines, runeMeasure)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	if got := ellipsize("Wicked", 10, runeMeasure); got != "Wicked" {
		t.Errorf("Short title should be unchanged, got %q", got)
	}
	// "Deadpool &..." 宽 13，超出；去掉末尾空格后为 "Deadpool..."
	if got := ellipsize("Deadpool & Wolverine", 12, runeMeasure); got != "Deadpool..." {
		t.Errorf("Expected %q, got %q", "Deadpool...", got)
	}
	if got := ellipsize("Wolverine", 2, runeMeasure); got != "..." {
		t.Errorf("Expected bare ellipsis when nothing fits, got %q", got)
	}
}

func TestPosterInitial(t *testing.T) {
	tests := map[string]string{
		"Oppenheimer": "O",
		"  robô":      "R",
		"élite":       "É",
		"":            "?",
	}
	for title, want := range tests {
		if got := posterInitial(title); got != want {
			t.Errorf("posterInitial(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(true) != DarkPalette || PaletteFor(false) != LightPalette {
		t.Error("PaletteFor returned the wrong palette")
	}
	if DarkPalette.Background == LightPalette.Background {
		t.Error("Dark and light backgrounds should differ")
	}
}

// TestNavButtonRects 按钮位于两侧、高度 45% 处，直径为条目宽度的 1/3
func TestNavButtonRects(t *testing.T) {
	prev, next := navButtonRects(375, 667, 200)

	if prev.Dx() != 66 || next.Dx() != 66 {
		t.Errorf("Expected diameter 66, got %d / %d", prev.Dx(), next.Dx())
	}
	if prev.Min.X != navButtonInset || next.Max.X != 375-navButtonInset {
		t.Errorf("Buttons should be inset from the edges: %v %v", prev, next)
	}
	height := 667.0
	center := int(height * 0.45)
	if !image.Pt(prev.Min.X+1, center).In(prev) || !image.Pt(next.Max.X-1, center).In(next) {
		t.Error("Buttons should be vertically centered at 45% height")
	}
	if prev.Overlaps(next) {
		t.Error("Buttons must not overlap")
	}
}

// TestGlyphSegments 描边从不可见到完整再到被擦除
func TestGlyphSegments(t *testing.T) {
	geometry, _ := utils.ResolveGeometry(utils.LayoutBox{Width: 90, Height: 120})
	length := geometry.TotalPathLength
	snap := func(offset, zoom float64) systems.IntroSnapshot {
		return systems.IntroSnapshot{
			Phase:       components.PhaseReveal,
			TraceOffset: offset,
			ZoomScale:   zoom,
			Geometry:    geometry,
			Measured:    true,
		}
	}

	if segs := glyphSegments(snap(length, 1), 0, 0); len(segs) != 0 {
		t.Errorf("Expected nothing visible at offset L, got %d segments", len(segs))
	}
	if segs := glyphSegments(snap(-length, 1), 0, 0); len(segs) != 0 {
		t.Errorf("Expected nothing visible at offset -L, got %d segments", len(segs))
	}

	full := glyphSegments(snap(0, 1), 100, 200)
	if len(full) != 3 {
		t.Fatalf("Expected 3 visible segments at offset 0, got %d", len(full))
	}
	// 字形以 (100, 200) 为中心：左下角在 (55, 260)
	if full[0].From.X != 55 || full[0].From.Y != 260 {
		t.Errorf("Expected path start at (55, 260), got %+v", full[0].From)
	}

	// 放大 2 倍后左下角离中心的距离翻倍
	zoomed := glyphSegments(snap(0, 2), 100, 200)
	if math.Abs(zoomed[0].From.X-10) > 1e-9 || math.Abs(zoomed[0].From.Y-320) > 1e-9 {
		t.Errorf("Expected zoomed start at (10, 320), got %+v", zoomed[0].From)
	}

	// 描入一半：只看到第一段竖线和部分对角线
	half := glyphSegments(snap(length/2, 1), 0, 0)
	if len(half) != 2 {
		t.Errorf("Expected 2 segments half way through the reveal, got %d", len(half))
	}
}

// TestSceneTeardownReleasesEntities 卸载场景后实体被释放，完成回调不再触发
func TestSceneTeardownReleasesEntities(t *testing.T) {
	cfg := config.DefaultAppConfig()

	completed := 0
	intro := NewIntroScene(cfg.Intro, nil, func() { completed++ })
	intro.Update(1.0 / 60.0)
	intro.Teardown()
	if ids := ecs.GetEntitiesWith1[*components.IntroRevealComponent](intro.entityManager); len(ids) != 0 {
		t.Errorf("Expected intro entities released, got %v", ids)
	}
	intro.Update(3)
	if completed != 0 {
		t.Errorf("Completion fired after teardown: %d", completed)
	}

	carousel := NewCarouselScene(context.Background(), cfg.Carousel, nil, nil, nil)
	carousel.Teardown()
	if ids := ecs.GetEntitiesWith1[*components.CarouselComponent](carousel.entityManager); len(ids) != 0 {
		t.Errorf("Expected carousel entities released, got %v", ids)
	}
	if carousel.carouselSystem.Advance(systems.DirectionNext) {
		t.Error("Advance should be rejected after teardown")
	}
}
