package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/systems"
)

// timelineSample 某一时刻的开场动画状态
type timelineSample struct {
	At          time.Duration
	Phase       components.SequencePhase
	TraceOffset float64
	ZoomScale   float64
	Complete    bool
}

func newTimelineCmd() *cobra.Command {
	var (
		step      time.Duration
		measureAt time.Duration
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Sample the intro reveal values over time without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 {
				return fmt.Errorf("--step must be positive, got %s", step)
			}
			settings := settingsFromContext(cmd.Context())
			cfg, err := settings.appConfig()
			if err != nil {
				return err
			}

			samples, pathLength := sampleTimeline(cfg.Intro, step, measureAt)
			loggerFromContext(cmd.Context()).Debug("sampled intro",
				"samples", len(samples), "pathLength", pathLength)
			return writeTimeline(cmd.OutOrStdout(), samples, pathLength)
		},
	}

	cmd.Flags().DurationVar(&step, "step", 100*time.Millisecond, "sampling interval")
	cmd.Flags().DurationVar(&measureAt, "measure-at", 0, "deliver the glyph measurement after this delay")
	return cmd
}

// sampleTimeline 以固定步长推进开场动画直到完成，返回每一步的状态和路径总长
// measureAt 模拟延迟到达的测量结果
func sampleTimeline(cfg config.IntroConfig, step, measureAt time.Duration) ([]timelineSample, float64) {
	em := ecs.NewEntityManager()
	intro := systems.NewIntroRevealSystem(em, cfg, nil)
	defer intro.Teardown()

	var (
		samples  []timelineSample
		now      time.Duration
		measured bool
	)
	record := func() {
		snap := intro.Snapshot()
		samples = append(samples, timelineSample{
			At:          now,
			Phase:       snap.Phase,
			TraceOffset: snap.TraceOffset,
			ZoomScale:   snap.ZoomScale,
			Complete:    snap.PhaseComplete,
		})
	}

	limit := cfg.Duration(cfg.HandoffMs) + step
	for {
		if !measured && now >= measureAt {
			intro.Measure(cfg.GlyphWidth, cfg.GlyphHeight)
			measured = true
		}
		record()
		if intro.IsCompleted() || now >= limit {
			break
		}
		intro.Update(step.Seconds())
		now += step
	}
	return samples, intro.Snapshot().Geometry.TotalPathLength
}

func writeTimeline(w io.Writer, samples []timelineSample, pathLength float64) error {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.At.Milliseconds()),
			string(s.Phase),
			fmt.Sprintf("%.2f", s.TraceOffset),
			fmt.Sprintf("%.3f", s.ZoomScale),
			fmt.Sprintf("%t", s.Complete),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("t (ms)", "phase", "trace offset", "zoom", "complete").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	if _, err := fmt.Fprintf(w, "path length: %.2f\n", pathLength); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
