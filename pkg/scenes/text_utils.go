package scenes

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawText 在 (x, y) 绘制单行文本（左上角对齐）
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawTextCentered 以 cx 为水平中心绘制单行文本
func drawTextCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, y float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	width, _ := text.Measure(s, face, 0)
	drawText(screen, s, face, cx-width/2, y, clr)
}

// wrapText 按宽度折行，measure 返回文本宽度
// 单个超长单词独占一行，不会被拆开；最多返回 maxLines 行，超出部分以 "..." 结尾
func wrapText(s string, maxWidth float64, maxLines int, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = strings.TrimRight(lines[maxLines-1], " .,") + "..."
	}
	return lines
}

// faceMeasure 返回使用 face 测量宽度的函数
func faceMeasure(face *text.GoTextFace) func(string) float64 {
	return func(s string) float64 {
		width, _ := text.Measure(s, face, 0)
		return width
	}
}
