package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(theme Theme, shown, total int, sortLabel string, width int, searching, busy bool) string {
	left := fmt.Sprintf(" %d articles", shown)
	if shown != total {
		left = fmt.Sprintf(" %d of %d articles", shown, total)
	}
	left += " · " + sortLabel
	if theme.Dark {
		left += " · dark"
	} else {
		left += " · light"
	}

	right := " / search  s sort  d theme  g regenerate  r reload  q quit "
	if searching {
		right = " esc clear  enter apply "
	}
	if busy {
		left += " (working...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return theme.StatusBar.Width(width).Render(bar)
}
