package utils

import "math"

// LayoutBox 外部测量得到的包围盒（像素）
// 任一维度 <= 0 视为"尚未测量"
type LayoutBox struct {
	Width  float64
	Height float64
}

// IsMeasured 两个维度都为正数时返回 true
func (b LayoutBox) IsMeasured() bool {
	return b.Width > 0 && b.Height > 0
}

// GeometryProfile 由 LayoutBox 推导出的路径几何量，计算后不可变
type GeometryProfile struct {
	Width  float64
	Height float64
	// Diagonal 对角线长度 hypot(w, h)
	Diagonal float64
	// TotalPathLength "N" 字形描边总长度：竖线 + 对角线 + 竖线
	TotalPathLength float64
}

// ResolveGeometry 计算包围盒的几何量
// 纯函数；未测量的包围盒返回 ok=false，调用方据此推迟调度
func ResolveGeometry(box LayoutBox) (GeometryProfile, bool) {
	if !box.IsMeasured() {
		return GeometryProfile{}, false
	}
	diagonal := math.Hypot(box.Width, box.Height)
	return GeometryProfile{
		Width:           box.Width,
		Height:          box.Height,
		Diagonal:        diagonal,
		TotalPathLength: box.Height + diagonal + box.Height,
	}, true
}

// GeometryCache 以 LayoutBox 为键的单项缓存
// 相同的包围盒不会重复计算
type GeometryCache struct {
	key     LayoutBox
	profile GeometryProfile
	valid   bool
}

// Resolve 返回缓存的几何量，包围盒变化时重新计算
func (c *GeometryCache) Resolve(box LayoutBox) (GeometryProfile, bool) {
	if c.valid && c.key == box {
		return c.profile, true
	}
	profile, ok := ResolveGeometry(box)
	if !ok {
		return GeometryProfile{}, false
	}
	c.key = box
	c.profile = profile
	c.valid = true
	return profile, true
}

// Point 二维点
type Point struct {
	X, Y float64
}

// Segment 线段
type Segment struct {
	From, To Point
}

// GlyphPath 返回 "N" 字形的折线：左下 → 左上 → 右下 → 右上
// 折线长度等于 TotalPathLength
func GlyphPath(p GeometryProfile) []Point {
	return []Point{
		{0, p.Height},
		{0, 0},
		{p.Width, p.Height},
		{p.Width, 0},
	}
}

// TraceSpan 将描边偏移量映射为可见的弧长区间 [start, end]
//
// 描边以 total 作为虚线长度（实线 total，间隔 total）：
//   - offset ∈ [0, total]：可见 [0, total-offset]（描入）
//   - offset ∈ [-total, 0)：可见 [-offset, total]（描出，从起点开始擦除）
//
// 区间为空时 visible=false。
func TraceSpan(offset, total float64) (start, end float64, visible bool) {
	if total <= 0 {
		return 0, 0, false
	}
	offset = math.Max(-total, math.Min(total, offset))
	if offset >= 0 {
		start, end = 0, total-offset
	} else {
		start, end = -offset, total
	}
	return start, end, end-start > 0
}

// ClipPath 截取折线在弧长区间 [start, end] 内的部分
func ClipPath(path []Point, start, end float64) []Segment {
	var result []Segment
	if end <= start {
		return result
	}

	walked := 0.0
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		length := math.Hypot(b.X-a.X, b.Y-a.Y)
		segStart, segEnd := walked, walked+length
		walked = segEnd
		if length == 0 || segEnd <= start || segStart >= end {
			continue
		}

		from := (math.Max(start, segStart) - segStart) / length
		to := (math.Min(end, segEnd) - segStart) / length
		result = append(result, Segment{
			From: Point{Lerp(a.X, b.X, from), Lerp(a.Y, b.Y, from)},
			To:   Point{Lerp(a.X, b.X, to), Lerp(a.Y, b.Y, to)},
		})
	}
	return result
}
