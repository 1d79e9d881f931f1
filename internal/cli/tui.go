package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gonewx/cinereel/internal/tui"
	"github.com/gonewx/cinereel/pkg/items"
)

func newTUICmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play the intro and browse films in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings := settingsFromContext(ctx)

			// 全屏界面下日志不能写到终端
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			level := charmlog.InfoLevel
			if settings.Verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(out, level)
			charmlog.SetDefault(logger)

			cfg, err := settings.appConfig()
			if err != nil {
				return err
			}

			loader := items.NewLoader(settings.source())
			loader.Start(ctx)
			defer loader.Stop()

			model, err := tui.New(ctx, tui.Options{
				AppConfig: cfg,
				Loader:    loader,
				Settings:  settings.themeSettings(StorageName, logger),
				SkipIntro: settings.SkipIntro,
			})
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal UI runs")
	return cmd
}
