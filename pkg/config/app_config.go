package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/cinereel/pkg/utils"
)

// 窗口尺寸默认值（竖屏手机比例）
const (
	DefaultWindowWidth  = 375
	DefaultWindowHeight = 667
)

// AppConfig 动画与轮播的调参配置
//
// 配置文件位置: data/cinereel.yaml
// 文件中未出现的字段保留 DefaultAppConfig 中的默认值。
type AppConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Intro    IntroConfig    `yaml:"intro"`
	Carousel CarouselConfig `yaml:"carousel"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// IntroConfig 开场揭示动画的阶段时间表（毫秒）
type IntroConfig struct {
	// RevealMs 描入阶段时长
	RevealMs int `yaml:"revealMs"`
	// HoldMs 描入结束到描出开始之间的停顿
	HoldMs int `yaml:"holdMs"`
	// ZoomOutMs 描出阶段时长
	ZoomOutMs int `yaml:"zoomOutMs"`
	// ZoomDelayMs 缩放开始时间（相对几何量就绪）
	ZoomDelayMs int `yaml:"zoomDelayMs"`
	// ZoomDurationMs 缩放时长
	ZoomDurationMs int `yaml:"zoomDurationMs"`
	// ZoomTarget 缩放终值（起始为 1）
	ZoomTarget float64 `yaml:"zoomTarget"`
	// HandoffMs 从挂载起到交出控制权的固定时长，与几何量无关
	HandoffMs int `yaml:"handoffMs"`

	RevealEasing  string `yaml:"revealEasing"`
	ZoomOutEasing string `yaml:"zoomOutEasing"`
	ZoomEasing    string `yaml:"zoomEasing"`

	// GlyphWidth/GlyphHeight 窗口模式下 "N" 字形的测量尺寸（像素）
	GlyphWidth  float64 `yaml:"glyphWidth"`
	GlyphHeight float64 `yaml:"glyphHeight"`
}

// CarouselConfig 轮播布局与弹簧参数
type CarouselConfig struct {
	ItemWidth  float64 `yaml:"itemWidth"`
	ItemMargin float64 `yaml:"itemMargin"`

	Stiffness                 float64 `yaml:"stiffness"`
	Damping                   float64 `yaml:"damping"`
	Mass                      float64 `yaml:"mass"`
	RestDisplacementThreshold float64 `yaml:"restDisplacementThreshold"`
	RestSpeedThreshold        float64 `yaml:"restSpeedThreshold"`
	OvershootClamping         bool    `yaml:"overshootClamping"`
}

// DefaultAppConfig 返回默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Title:  "cinereel",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Intro: IntroConfig{
			RevealMs:       1000,
			HoldMs:         400,
			ZoomOutMs:      1000,
			ZoomDelayMs:    1000,
			ZoomDurationMs: 2000,
			ZoomTarget:     2,
			HandoffMs:      2500,
			RevealEasing:   utils.EasingNameOutQuad,
			ZoomOutEasing:  utils.EasingNameInQuad,
			ZoomEasing:     utils.EasingNameInOutQuad,
			GlyphWidth:     90,
			GlyphHeight:    120,
		},
		Carousel: CarouselConfig{
			ItemWidth:                 200,
			ItemMargin:                20,
			Stiffness:                 utils.DefaultSpringStiffness,
			Damping:                   utils.DefaultSpringDamping,
			Mass:                      utils.DefaultSpringMass,
			RestDisplacementThreshold: utils.DefaultRestDisplacementThreshold,
			RestSpeedThreshold:        utils.DefaultRestSpeedThreshold,
		},
	}
}

// LoadAppConfig 从文件加载配置
//
// 参数:
//   - path: 配置文件路径（如 "data/cinereel.yaml"）
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config: %w", err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析 YAML 配置并校验
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Intro.Validate(); err != nil {
		return fmt.Errorf("intro: %w", err)
	}
	if err := c.Carousel.Validate(); err != nil {
		return fmt.Errorf("carousel: %w", err)
	}
	return nil
}

// Validate 验证开场动画配置
func (c *IntroConfig) Validate() error {
	durations := map[string]int{
		"revealMs":       c.RevealMs,
		"holdMs":         c.HoldMs,
		"zoomOutMs":      c.ZoomOutMs,
		"zoomDelayMs":    c.ZoomDelayMs,
		"zoomDurationMs": c.ZoomDurationMs,
		"handoffMs":      c.HandoffMs,
	}
	for name, ms := range durations {
		if ms < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, ms)
		}
	}
	if c.HandoffMs == 0 {
		return fmt.Errorf("handoffMs must be > 0")
	}
	if c.ZoomTarget <= 0 {
		return fmt.Errorf("zoomTarget must be > 0, got %.2f", c.ZoomTarget)
	}
	for _, name := range []string{c.RevealEasing, c.ZoomOutEasing, c.ZoomEasing} {
		if _, err := utils.EasingByName(name); err != nil {
			return err
		}
	}
	if c.GlyphWidth <= 0 || c.GlyphHeight <= 0 {
		return fmt.Errorf("glyph size must be positive, got %.1fx%.1f", c.GlyphWidth, c.GlyphHeight)
	}
	return nil
}

// Duration 将毫秒字段转换为 time.Duration
func (c *IntroConfig) Duration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Easings 返回三段动画的缓动函数
// 配置已通过 Validate 时不会失败
func (c *IntroConfig) Easings() (reveal, zoomOut, zoom utils.Easing) {
	reveal, _ = utils.EasingByName(c.RevealEasing)
	zoomOut, _ = utils.EasingByName(c.ZoomOutEasing)
	zoom, _ = utils.EasingByName(c.ZoomEasing)
	return reveal, zoomOut, zoom
}

// Validate 验证轮播配置
func (c *CarouselConfig) Validate() error {
	if c.ItemWidth <= 0 {
		return fmt.Errorf("itemWidth must be > 0, got %.1f", c.ItemWidth)
	}
	if c.ItemMargin < 0 {
		return fmt.Errorf("itemMargin must be >= 0, got %.1f", c.ItemMargin)
	}
	// 无阻尼的弹簧永远达不到静止阈值
	if c.Stiffness <= 0 || c.Mass <= 0 || c.Damping <= 0 {
		return fmt.Errorf("spring needs stiffness > 0, mass > 0, damping > 0, got k=%.1f m=%.1f c=%.1f",
			c.Stiffness, c.Mass, c.Damping)
	}
	if c.RestDisplacementThreshold <= 0 || c.RestSpeedThreshold <= 0 {
		return fmt.Errorf("rest thresholds must be > 0")
	}
	return nil
}

// Spring 返回弹簧参数
func (c *CarouselConfig) Spring() utils.SpringConfig {
	return utils.SpringConfig{
		Stiffness:                 c.Stiffness,
		Damping:                   c.Damping,
		Mass:                      c.Mass,
		RestDisplacementThreshold: c.RestDisplacementThreshold,
		RestSpeedThreshold:        c.RestSpeedThreshold,
		OvershootClamping:         c.OvershootClamping,
	}
}
