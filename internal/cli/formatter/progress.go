package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a stage progress percentage as a bar like
// [████░░░░]  45%. Values outside 0..100 are clamped.
func RenderProgress(percent int, width int) string {
	percent = min(max(percent, 0), 100)
	width = max(width, 2)

	filled := percent * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case percent < 33:
		style = StyleRed
	case percent < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), percent)
}

// RenderRatio renders done/total, green once everything is done.
func RenderRatio(done, total int) string {
	s := fmt.Sprintf("%d/%d", done, total)
	if total > 0 && done == total {
		return StyleGreen.Render(s)
	}
	return s
}
