// Package cli 实现 cinereel 命令行
//
// 命令：
//   - window（默认）：在窗口中播放开场动画并显示影片轮播
//   - tui：在终端中运行同样的流程
//   - timeline：无界面采样开场动画的数值
//   - items：加载并列出影片
//
// 所有命令都支持 --verbose (-v) 输出调试日志；设置也可以通过 CINEREEL_* 环境变量提供。
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// StorageName 主题设置的 gdata 存储名
const StorageName = "cinereel"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion 设置 --version 显示的版本信息，通常由 main 在构建时注入
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute 运行命令行
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd 创建根命令，不带子命令时等同于 window
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cinereel",
		Short:        "cinereel plays a stroke reveal intro and browses now-playing films",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			level := charmlog.InfoLevel
			if settings.Verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			charmlog.SetDefault(logger)

			ctx := withLogger(cmd.Context(), logger)
			cmd.SetContext(withSettings(ctx, settings))
			return nil
		},
		RunE: runWindow,
	}

	root.SetVersionTemplate(fmt.Sprintf("cinereel %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	addSettingsFlags(root.PersistentFlags())

	root.AddCommand(newWindowCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newTimelineCmd())
	root.AddCommand(newItemsCmd())
	return root
}

const settingsKey ctxKey = 1

func withSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey, s)
}

// settingsFromContext 取出 PersistentPreRunE 解析的设置，没有时返回默认设置
func settingsFromContext(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey).(Settings); ok {
		return s
	}
	return Settings{ItemsURL: DefaultItemsURL}
}
