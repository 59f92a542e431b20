package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/stagetrack/internal/app"
	"github.com/alexanderramin/stagetrack/internal/cli/formatter"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project-wide progress statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.withApp(cmd.Context(), func(a *app.App) error {
				stats, err := a.Stats.Compute(cmd.Context())
				if err != nil {
					return err
				}
				renderStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
}

func renderStats(w io.Writer, s *domain.Stats) {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-16s %s\n", formatter.Dim(label), value)
	}

	line("Stages", fmt.Sprintf("%d", s.TotalStages))
	line("  complete", formatter.StyleGreen.Render(fmt.Sprintf("%d", s.Completed)))
	line("  in progress", formatter.StyleYellow.Render(fmt.Sprintf("%d", s.InProgress)))
	line("  testing", formatter.StyleBlue.Render(fmt.Sprintf("%d", s.Testing)))
	line("  pending", fmt.Sprintf("%d", s.Pending))
	line("Avg progress", formatter.RenderProgress(int(s.AvgProgress+0.5), progressBarWidth))
	line("Hours", fmt.Sprintf("%s of %s", formatter.FormatHours(roundTenth(s.HoursWorked)), formatter.FormatHours(float64(s.TotalHours))))
	line("Tasks", formatter.RenderRatio(s.CompletedTasks, s.TotalTasks))

	fmt.Fprintln(w, formatter.RenderBox("Project stats", strings.TrimRight(b.String(), "\n")))
}

func roundTenth(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
