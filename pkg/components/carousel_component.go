package components

// CarouselComponent 有界轮播的状态
//
// 静止时满足 maxRight <= Offset <= InitialOffset，其中
// maxRight = -(ItemCount*ItemExtent - ViewportWidth) + InitialOffset。
type CarouselComponent struct {
	// Offset 当前水平平移量（动画中的瞬时值）
	Offset float64
	// Target 最近一次被接受的目标偏移，新请求基于它计算
	Target float64
	// Velocity 弹簧速度（像素/秒）
	Velocity float64

	ItemCount     int
	ItemWidth     float64
	ItemMargin    float64
	ViewportWidth float64
	// InitialOffset 让第一个条目居中的偏移：(ViewportWidth - ItemWidth) / 2
	InitialOffset float64

	// IsAnimating 弹簧是否尚未静止
	IsAnimating bool
}

// ItemExtent 单个条目占用的水平宽度（宽度 + 两侧外边距）
func (c *CarouselComponent) ItemExtent() float64 {
	return c.ItemWidth + 2*c.ItemMargin
}

// Bounds 返回偏移量的有效范围 [maxRight, maxLeft]
// 内容窄于视口时 maxRight > maxLeft，范围为空
func (c *CarouselComponent) Bounds() (maxRight, maxLeft float64) {
	rightBoundary := -(float64(c.ItemCount)*c.ItemExtent() - c.ViewportWidth)
	return rightBoundary + c.InitialOffset, c.InitialOffset
}

// InBounds 检查偏移量是否在有效范围内
func (c *CarouselComponent) InBounds(offset float64) bool {
	maxRight, maxLeft := c.Bounds()
	return offset >= maxRight && offset <= maxLeft
}
