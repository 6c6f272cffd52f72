package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the full style set for one color scheme. The dark flag
// is an app-level preference persisted across sessions, so the two
// palettes are explicit rather than terminal-adaptive.
type Theme struct {
	Dark bool

	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorDim       lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorGreen     lipgloss.Color

	Header       lipgloss.Style
	HeaderDate   lipgloss.Style
	ListPane     lipgloss.Style
	ListPaneSel  lipgloss.Style
	CardPane     lipgloss.Style
	CardPaneSel  lipgloss.Style
	ItemTitle    lipgloss.Style
	ItemSelected lipgloss.Style
	ItemModel    lipgloss.Style
	ItemTime     lipgloss.Style
	CardTitle    lipgloss.Style
	CardSummary  lipgloss.Style
	SectionHead  lipgloss.Style
	Bullet       lipgloss.Style
	CodeLang     lipgloss.Style
	CodeBlock    lipgloss.Style
	Footer       lipgloss.Style
	StatusBar    lipgloss.Style
	Spinner      lipgloss.Style
	SearchPrompt lipgloss.Style
	Notice       lipgloss.Style
	ErrorHead    lipgloss.Style
	ErrorBody    lipgloss.Style
	Empty        lipgloss.Style
}

// NewTheme builds the dark or light style set.
func NewTheme(dark bool) Theme {
	t := Theme{Dark: dark}

	if dark {
		t.ColorPrimary = lipgloss.Color("#7571F9")
		t.ColorSecondary = lipgloss.Color("#ABABAB")
		t.ColorDim = lipgloss.Color("#626262")
		t.ColorAccent = lipgloss.Color("#F25D94")
		t.ColorGreen = lipgloss.Color("#25D366")
	} else {
		t.ColorPrimary = lipgloss.Color("#5A56E0")
		t.ColorSecondary = lipgloss.Color("#3D3D3D")
		t.ColorDim = lipgloss.Color("#9B9B9B")
		t.ColorAccent = lipgloss.Color("#D14D82")
		t.ColorGreen = lipgloss.Color("#04B575")
	}

	border := lipgloss.Color("#383838")
	statusBg := lipgloss.Color("#16213E")
	codeBg := lipgloss.Color("#1C1C2E")
	if !dark {
		border = lipgloss.Color("#DBDBDB")
		statusBg = lipgloss.Color("#E8E8E8")
		codeBg = lipgloss.Color("#F2F2F7")
	}

	t.Header = lipgloss.NewStyle().Bold(true).Foreground(t.ColorPrimary).PaddingLeft(1)
	t.HeaderDate = lipgloss.NewStyle().Foreground(t.ColorDim).Align(lipgloss.Right)

	t.ListPane = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
	t.ListPaneSel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.ColorPrimary)
	t.CardPane = t.ListPane
	t.CardPaneSel = t.ListPaneSel

	t.ItemTitle = lipgloss.NewStyle().Foreground(t.ColorPrimary).Bold(true)
	t.ItemSelected = lipgloss.NewStyle().Foreground(t.ColorAccent).Bold(true)
	t.ItemModel = lipgloss.NewStyle().Foreground(t.ColorGreen)
	t.ItemTime = lipgloss.NewStyle().Foreground(t.ColorDim)

	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(t.ColorPrimary).MarginBottom(1)
	t.CardSummary = lipgloss.NewStyle().Foreground(t.ColorSecondary)
	t.SectionHead = lipgloss.NewStyle().Bold(true).Foreground(t.ColorGreen).MarginTop(1)
	t.Bullet = lipgloss.NewStyle().Foreground(t.ColorSecondary)
	t.CodeLang = lipgloss.NewStyle().Foreground(t.ColorAccent).Bold(true)
	t.CodeBlock = lipgloss.NewStyle().Foreground(t.ColorSecondary).Background(codeBg).Padding(0, 1)
	t.Footer = lipgloss.NewStyle().Foreground(t.ColorDim).Italic(true).MarginTop(1)

	t.StatusBar = lipgloss.NewStyle().Background(statusBg).Foreground(t.ColorSecondary).PaddingLeft(1).PaddingRight(1)
	t.Spinner = lipgloss.NewStyle().Foreground(t.ColorAccent)
	t.SearchPrompt = lipgloss.NewStyle().Foreground(t.ColorAccent).Bold(true)
	t.Notice = lipgloss.NewStyle().Foreground(t.ColorAccent)
	t.ErrorHead = lipgloss.NewStyle().Bold(true).Foreground(t.ColorAccent)
	t.ErrorBody = lipgloss.NewStyle().Foreground(t.ColorSecondary)
	t.Empty = lipgloss.NewStyle().Foreground(t.ColorDim)

	return t
}
