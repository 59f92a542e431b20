package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/stagetrack/internal/app"
	"github.com/alexanderramin/stagetrack/internal/cli/formatter"
	"github.com/alexanderramin/stagetrack/internal/importer"
	"github.com/spf13/cobra"
)

func newExportCmd(st *state) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all stages and tasks as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.withApp(cmd.Context(), func(a *app.App) error {
				doc, err := a.Transfer.Export(cmd.Context())
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding export: %w", err)
				}
				data = append(data, '\n')

				if output == "" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d stages to %s\n", len(doc), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newImportCmd(st *state) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all stages and tasks with a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate the file before asking anything.
			doc, err := importer.Load(args[0])
			if err != nil {
				return err
			}
			ok, err := st.confirmDestructive(cmd.OutOrStdout(), yes,
				fmt.Sprintf("Import %d stages from %s?", len(doc), args[0]))
			if err != nil || !ok {
				return err
			}
			return st.withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Transfer.Import(cmd.Context(), doc)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(fmt.Sprintf("Imported %d stages.", n)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newResetCmd(st *state) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with the default stage template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := st.confirmDestructive(cmd.OutOrStdout(), yes, "Reset to the default template?")
			if err != nil || !ok {
				return err
			}
			return st.withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Transfer.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Data reset to default."))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
