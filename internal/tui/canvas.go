package tui

import (
	"math"
	"strings"

	"github.com/gonewx/cinereel/pkg/utils"
)

// 一个终端字符格对应的逻辑像素尺寸
// 核心系统以像素为单位工作，终端端在这里做换算
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// canvas 固定尺寸的字符画布，越界写入被忽略
type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &canvas{cols: cols, rows: rows, cells: cells}
}

func (c *canvas) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = r
}

// text 从 (col,row) 开始写一行文字
func (c *canvas) text(col, row int, s string) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r)
	}
}

// line 把像素坐标下的线段光栅化为字符格
func (c *canvas) line(seg utils.Segment, r rune) {
	dx := (seg.To.X - seg.From.X) / cellWidth
	dy := (seg.To.Y - seg.From.Y) / cellHeight
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))*2)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := utils.Lerp(seg.From.X, seg.To.X, t)
		y := utils.Lerp(seg.From.Y, seg.To.Y, t)
		c.set(int(math.Floor(x/cellWidth)), int(math.Floor(y/cellHeight)), r)
	}
}

// box 画一个 w×h 字符格的边框
func (c *canvas) box(col, row, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for x := col + 1; x < col+w-1; x++ {
		c.set(x, row, '─')
		c.set(x, row+h-1, '─')
	}
	for y := row + 1; y < row+h-1; y++ {
		c.set(col, y, '│')
		c.set(col+w-1, y, '│')
	}
	c.set(col, row, '╭')
	c.set(col+w-1, row, '╮')
	c.set(col, row+h-1, '╰')
	c.set(col+w-1, row+h-1, '╯')
}

func (c *canvas) lines() []string {
	out := make([]string, c.rows)
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}

func (c *canvas) String() string {
	return strings.Join(c.lines(), "\n")
}

// truncate 按字符数截断，超出时以 "..." 结尾
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:max(width, 0)])
	}
	return string(runes[:width-3]) + "..."
}
