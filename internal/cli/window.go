package cli

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gonewx/cinereel/pkg/app"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Play the intro and browse films in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	settings := settingsFromContext(ctx)

	cfg, err := settings.appConfig()
	if err != nil {
		return err
	}

	cinereel, err := app.NewApp(ctx, app.Config{
		AppConfig: cfg,
		Source:    settings.source(),
		Settings:  settings.themeSettings(StorageName, logger),
		SkipIntro: settings.SkipIntro,
	})
	if err != nil {
		return err
	}
	defer cinereel.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Debug("starting window", "width", cfg.Window.Width, "height", cfg.Window.Height)
	if err := ebiten.RunGame(cinereel); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return ctx.Err()
}
