package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gonewx/cinereel/pkg/items"
)

var (
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "Load the film list through the configured sources and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings := settingsFromContext(ctx)

			result, err := settings.source().Fetch(ctx)
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("films loaded", "count", len(result.Items), "degraded", result.Degraded)
			return writeItems(cmd.OutOrStdout(), result)
		},
	}
}

func writeItems(w io.Writer, result items.Result) error {
	if result.Degraded {
		msg := "API unavailable, showing the offline list"
		if result.Err != nil {
			msg = fmt.Sprintf("%s (%v)", msg, result.Err)
		}
		if _, err := fmt.Fprintln(w, styleWarning.Render(msg)); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(result.Items))
	for i, film := range result.Items {
		rating := "—"
		if film.Rating > 0 {
			rating = fmt.Sprintf("%.1f", film.Rating)
		}
		trailer := film.Trailer
		if trailer == "" {
			trailer = "—"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), film.Key, rating, film.ImageRef, trailer})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Title", "Rating", "Poster", "Trailer").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
