package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/stagetrack/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNeedsConfirmation = errors.New("refusing to replace all data without confirmation; pass --yes")

// huhTheme returns a huh theme using the formatter palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("This replaces every stage and task.").
				Affirmative("Replace").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(huhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// confirmDestructive gates an operation that replaces all data. It returns
// false without error when the user declines.
func (st *state) confirmDestructive(out io.Writer, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !st.opts.IsInteractive() {
		return false, errNeedsConfirmation
	}
	ok, err := st.opts.Confirm(title)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(out, formatter.Dim("Cancelled."))
	}
	return ok, nil
}
