//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	make build-android    # Android
//	make build-ios        # iOS (仅 macOS)
package mobile

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/cinereel/pkg/app"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/embedded"
	"github.com/gonewx/cinereel/pkg/game"
	"github.com/gonewx/cinereel/pkg/items"
)

// DefaultAPIURL Android 模拟器访问宿主机后端的地址
const DefaultAPIURL = "http://10.0.2.2:3000"

func init() {
	embedded.Init(dataFS)
	logger := log.WithPrefix("Mobile")

	appConfig := config.DefaultAppConfig()
	if data, err := embedded.ReadFile(embedded.AppConfigPath); err == nil {
		if parsed, err := config.ParseAppConfig(data); err == nil {
			appConfig = parsed
		} else {
			logger.Warn("invalid embedded config, using defaults", "err", err)
		}
	}

	storage, err := game.OpenStorage("cinereel")
	if err != nil {
		logger.Warn("settings storage unavailable", "err", err)
	}

	source := items.NewFallbackSource(
		items.NewHTTPSource(DefaultAPIURL),
		&items.FileSource{FS: embedded.FS(), Path: embedded.FilmListPath},
	)

	cinereel, err := app.NewApp(context.Background(), app.Config{
		AppConfig: appConfig,
		Source:    source,
		Settings:  game.NewSettingsManager(storage),
	})
	if err != nil {
		logger.Fatal("初始化失败", "err", err)
	}

	mobile.SetGame(cinereel)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
