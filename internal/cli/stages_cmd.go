package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/stagetrack/internal/app"
	"github.com/alexanderramin/stagetrack/internal/cli/formatter"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/spf13/cobra"
)

const progressBarWidth = 12

func newStagesCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List stages with progress and task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.withApp(cmd.Context(), func(a *app.App) error {
				stages, err := a.Stages.ListWithTasks(cmd.Context())
				if err != nil {
					return err
				}
				renderStages(cmd.OutOrStdout(), stages)
				return nil
			})
		},
	}
}

func renderStages(w io.Writer, stages []*domain.Stage) {
	if len(stages) == 0 {
		fmt.Fprintln(w, formatter.Dim("No stages."))
		return
	}

	rows := make([][]string, 0, len(stages))
	for _, s := range stages {
		done := 0
		for _, t := range s.Tasks {
			if t.Completed {
				done++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Number),
			s.Icon,
			formatter.Bold(s.Name),
			formatter.StatusBadge(s.Status),
			formatter.RenderProgress(s.Progress, progressBarWidth),
			formatter.RenderRatio(done, len(s.Tasks)),
			s.Weeks,
			formatter.FormatHours(float64(s.Hours)),
		})
	}
	fmt.Fprint(w, formatter.RenderTable(
		[]string{"#", "", "STAGE", "STATUS", "PROGRESS", "TASKS", "WEEKS", "HOURS"},
		rows,
	))
}
