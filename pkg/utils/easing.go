package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// Easing 缓动函数类型
type Easing func(t float64) float64

// 缓动名称（配置文件中使用）
const (
	EasingNameLinear    = "linear"
	EasingNameOutQuad   = "easeOutQuad"
	EasingNameInQuad    = "easeInQuad"
	EasingNameInOutQuad = "easeInOutQuad"
	EasingNameOutCubic  = "easeOutCubic"
)

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出（减速）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入（加速）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad 二次方缓入缓出，作为未指定缓动时的默认曲线
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EasingByName 根据配置名称返回缓动函数
// 空字符串返回默认的 EaseInOutQuad
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", EasingNameInOutQuad:
		return EaseInOutQuad, nil
	case EasingNameLinear:
		return EaseLinear, nil
	case EasingNameOutQuad:
		return EaseOutQuad, nil
	case EasingNameInQuad:
		return EaseInQuad, nil
	case EasingNameOutCubic:
		return EaseOutCubic, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将进度限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
