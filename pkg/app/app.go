// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 internal/cli 的 window 命令调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/game"
	"github.com/gonewx/cinereel/pkg/items"
	"github.com/gonewx/cinereel/pkg/scenes"
	"github.com/gonewx/cinereel/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// AppConfig 动画与轮播调参，nil 时使用默认值
	AppConfig *config.AppConfig
	// Source 影片数据源
	Source *items.FallbackSource
	// Settings 主题设置，nil 时使用内存中的默认设置
	Settings *game.SettingsManager
	// SkipIntro 跳过开场动画，直接显示轮播
	SkipIntro bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	ctx          context.Context
	cancel       context.CancelFunc
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	loader       *items.Loader
	logger       *log.Logger
}

// NewApp 创建并初始化应用
//
// 影片列表在开场动画播放期间就开始后台加载；ctx 取消时加载随之取消。
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	appConfig := cfg.AppConfig
	if appConfig == nil {
		appConfig = config.DefaultAppConfig()
	}
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		ctx:          ctx,
		cancel:       cancel,
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		logger:       log.WithPrefix("App"),
	}

	if cfg.Source != nil {
		a.loader = items.NewLoader(cfg.Source)
		a.loader.Start(ctx)
	}

	fonts := game.NewFontManager()
	a.sceneManager.Register(scenes.SceneCarousel, func() game.Scene {
		return scenes.NewCarouselScene(ctx, appConfig.Carousel, a.loader, settings, fonts)
	})
	a.sceneManager.Register(scenes.SceneIntro, func() game.Scene {
		return scenes.NewIntroScene(appConfig.Intro, settings.DarkMode, a.handoff)
	})

	start := scenes.SceneIntro
	if cfg.SkipIntro {
		start = scenes.SceneCarousel
	}
	if err := a.sceneManager.Switch(start); err != nil {
		cancel()
		return nil, err
	}

	a.logger.Info("app started", "scene", start, "darkMode", settings.DarkMode())
	return a, nil
}

// handoff 开场动画完成后切换到轮播
func (a *App) handoff() {
	a.logger.Debug("intro handed off", "from", a.sceneManager.CurrentName())
	if err := a.sceneManager.Switch(scenes.SceneCarousel); err != nil {
		a.logger.Error("failed to switch to carousel", "err", err)
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}

	// F11 切换全屏（仅桌面端）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// D 切换深色主题
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		dark := a.settings.ToggleDarkMode()
		a.logger.Debug("theme toggled", "darkMode", dark)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，轮播在宽度变化时重新居中
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 卸载当前场景并停止后台加载
func (a *App) Close() {
	a.sceneManager.Teardown()
	a.cancel()
	if a.loader != nil {
		a.loader.Stop()
	}
	a.logger.Debug("app closed")
}
