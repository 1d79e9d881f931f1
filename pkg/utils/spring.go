package utils

import "math"

// 弹簧默认参数（质量-弹簧-阻尼二阶系统）
const (
	DefaultSpringStiffness = 100.0
	DefaultSpringDamping   = 10.0
	DefaultSpringMass      = 1.0
	// 静止判定阈值：位移 < 5px 且速度 < 5px/s
	DefaultRestDisplacementThreshold = 5.0
	DefaultRestSpeedThreshold        = 5.0

	// springMaxSubstep 单次积分的最大时间步长（秒），保证大 dt 下数值稳定
	springMaxSubstep = 1.0 / 240.0
)

// SpringConfig 弹簧参数
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	// RestDisplacementThreshold 与目标的距离低于此值视为静止
	RestDisplacementThreshold float64
	// RestSpeedThreshold 速度低于此值视为静止
	RestSpeedThreshold float64
	// OvershootClamping 为 true 时数值不会越过目标
	OvershootClamping bool
}

// DefaultSpringConfig 返回默认弹簧参数（欠阻尼，阻尼比 0.5）
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness:                 DefaultSpringStiffness,
		Damping:                   DefaultSpringDamping,
		Mass:                      DefaultSpringMass,
		RestDisplacementThreshold: DefaultRestDisplacementThreshold,
		RestSpeedThreshold:        DefaultRestSpeedThreshold,
	}
}

// SpringState 弹簧当前状态
type SpringState struct {
	Value    float64
	Velocity float64
}

// Step 将弹簧状态向 target 推进 dt 秒
// 使用半隐式欧拉积分，dt 较大时拆分为多个子步
func (c SpringConfig) Step(s SpringState, target, dt float64) SpringState {
	if dt <= 0 {
		return s
	}
	mass := c.Mass
	if mass <= 0 {
		mass = DefaultSpringMass
	}

	start := s.Value
	steps := int(math.Ceil(dt / springMaxSubstep))
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		force := -c.Stiffness*(s.Value-target) - c.Damping*s.Velocity
		s.Velocity += force / mass * h
		s.Value += s.Velocity * h
	}

	if c.OvershootClamping && crossed(start, s.Value, target) {
		s.Value = target
		s.Velocity = 0
	}
	return s
}

// Settled 位移和速度都低于阈值时返回 true
func (c SpringConfig) Settled(s SpringState, target float64) bool {
	return math.Abs(target-s.Value) < c.RestDisplacementThreshold &&
		math.Abs(s.Velocity) < c.RestSpeedThreshold
}

// crossed 判断从 from 到 to 是否越过（或到达）target
func crossed(from, to, target float64) bool {
	return (from <= target && to >= target) || (from >= target && to <= target)
}
