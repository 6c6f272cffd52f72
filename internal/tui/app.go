package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"explaindeck/internal/article"
	"explaindeck/internal/config"
	"explaindeck/internal/fetch"
	"explaindeck/internal/index"
	"explaindeck/internal/server"
	"explaindeck/internal/store"
)

type focusPane int

const (
	focusList focusPane = iota
	focusCard
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

// App owns the session state: the loaded record set, the current
// query, sort key, and theme. All of it lives here rather than in
// package-level variables.
type App struct {
	cfg   *config.Config
	db    *store.Store
	src   fetch.Source
	ix    *index.Index

	visible []article.Record
	cursor  int
	focus   focusPane
	mode    mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model

	sortKey index.Sort
	theme   Theme

	loading    bool
	generating bool
	loadErr    error
	notice     string

	cardScroll  int
	currentDate string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	DB      *store.Store
	Source  fetch.Source
	Records []article.Record
}

func NewApp(opts RunOpts) *App {
	dark := true
	if opts.DB != nil {
		dark = opts.DB.DarkMode()
	}
	theme := NewTheme(dark)

	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = theme.SearchPrompt.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Spinner

	a := &App{
		cfg:         opts.Cfg,
		db:          opts.DB,
		src:         opts.Source,
		ix:          index.New(opts.Records),
		searchInput: ti,
		spinner:     sp,
		theme:       theme,
		sortKey:     index.Newest,
		currentDate: time.Now().Format("Jan 2"),
	}
	a.refreshVisible()
	return a
}

// Init always kicks off a fresh load; any cached records passed in
// through RunOpts stay visible until it settles.
func (a *App) Init() tea.Cmd {
	a.loading = true
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// refreshVisible re-derives the filtered, sorted view from the index.
func (a *App) refreshVisible() {
	a.visible = a.ix.Visible(a.searchInput.Value(), a.sortKey)
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
	a.cardScroll = 0
}

// loadCmd captures its dependencies so the closure never touches the
// model from another goroutine.
func (a *App) loadCmd() tea.Cmd {
	src := a.src
	db := a.db
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result, err := fetch.FetchAll(ctx, src)
		if err != nil {
			return loadErrMsg{err: err}
		}
		if db != nil {
			if err := db.ReplaceAll(result.Records); err != nil {
				log.Warn("caching records", "err", err)
			}
		}
		return recordsLoadedMsg{result: result}
	}
}

func (a *App) generateCmd() tea.Cmd {
	endpoint := a.cfg.Endpoint()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		return generateDoneMsg{err: server.TriggerGenerate(ctx, http.DefaultClient, endpoint)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Transient notices clear on any keypress
		a.notice = ""
		return a.handleKey(msg)

	case recordsLoadedMsg:
		a.loading = false
		a.loadErr = nil
		a.ix.Load(msg.result.Records)
		a.refreshVisible()
		if n := len(msg.result.Errors); n > 0 {
			a.notice = fmt.Sprintf("%d record(s) skipped", n)
		}
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.loadErr = msg.err
		return a, nil

	case generateDoneMsg:
		a.generating = false
		if msg.err != nil {
			a.notice = msg.err.Error()
			return a, nil
		}
		a.notice = "article generated"
		a.loading = true
		return a, tea.Batch(a.loadCmd(), a.spinner.Tick)

	case spinner.TickMsg:
		if a.loading || a.generating {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.cardScroll = 0
		} else if a.focus == focusCard {
			a.cardScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.cardScroll = 0
		} else if a.focus == focusCard && a.cardScroll > 0 {
			a.cardScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusCard
		} else {
			a.focus = focusList
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "s":
		a.sortKey = a.sortKey.Toggle()
		a.refreshVisible()
		return a, nil
	case "d":
		return a, a.toggleDarkMode()
	case "r":
		if !a.loading {
			a.loading = true
			a.loadErr = nil
			return a, tea.Batch(a.loadCmd(), a.spinner.Tick)
		}
		return a, nil
	case "g":
		if !a.generating {
			a.generating = true
			return a, tea.Batch(a.generateCmd(), a.spinner.Tick)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

// toggleDarkMode flips the theme and persists the preference
// immediately.
func (a *App) toggleDarkMode() tea.Cmd {
	a.theme = NewTheme(!a.theme.Dark)
	a.searchInput.Prompt = a.theme.SearchPrompt.Render("/ ")
	a.spinner.Style = a.theme.Spinner

	if a.db == nil {
		return nil
	}
	db := a.db
	dark := a.theme.Dark
	return func() tea.Msg {
		if err := db.SetDarkMode(dark); err != nil {
			log.Warn("saving theme preference", "err", err)
		}
		return nil
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.refreshVisible()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Re-filter on every keystroke; the scan is in-memory and cheap.
	a.refreshVisible()
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return a.theme.Header.Render("explaindeck")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	searchHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - searchHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.35)
	cardWidth := a.width - listWidth - 1 // gap

	// Header
	headerLeft := a.theme.Header.Render("explaindeck")
	headerRight := a.theme.HeaderDate.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Search line
	searchLine := a.searchLine()

	var content string
	if a.loadErr != nil {
		content = a.renderLoadError(contentHeight + 4)
	} else {
		content = a.renderPanes(listWidth, cardWidth, contentHeight)
	}

	status := renderStatusBar(
		a.theme,
		len(a.visible),
		a.ix.Len(),
		a.sortKey.String(),
		a.width,
		a.mode == modeSearch,
		a.loading || a.generating,
	)
	if a.loading || a.generating {
		status = a.spinner.View() + " " + status
	}
	if a.notice != "" {
		status = a.theme.Notice.Render(truncateStr(a.notice, a.width-2))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, searchLine, content, status)
}

func (a *App) searchLine() string {
	if a.mode == modeSearch {
		return a.searchInput.View()
	}
	if q := strings.TrimSpace(a.searchInput.Value()); q != "" {
		return a.theme.SearchPrompt.Render("/ ") + a.theme.CardSummary.Render(q)
	}
	return a.theme.Empty.Render(" press / to search")
}

func (a *App) renderPanes(listWidth, cardWidth, contentHeight int) string {
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.theme, a.visible, a.cursor, contentHeight, innerListW,
		strings.TrimSpace(a.searchInput.Value()) != "")

	listStyle := a.theme.ListPane
	if a.focus == focusList {
		listStyle = a.theme.ListPaneSel
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	var selected *article.Record
	if len(a.visible) > 0 && a.cursor < len(a.visible) {
		selected = &a.visible[a.cursor]
	}
	innerCardW := cardWidth - 4
	cardContent := renderCard(a.theme, selected, innerCardW, contentHeight, a.cardScroll)

	cardStyle := a.theme.CardPane
	if a.focus == focusCard {
		cardStyle = a.theme.CardPaneSel
	}
	cardPane := cardStyle.Width(cardWidth - 2).Height(contentHeight).Render(cardContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, cardPane)
}

// renderLoadError replaces the article panes when no usable record
// set could be produced at all.
func (a *App) renderLoadError(height int) string {
	head := a.theme.ErrorHead.Render("Could not load articles")
	body := a.theme.ErrorBody.Render(wrapText(a.loadErr.Error(), a.width-8))
	hint := a.theme.Empty.Render("r retry  q quit")
	card := lipgloss.JoinVertical(lipgloss.Left, head, "", body, "", hint)
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) renderHelp() string {
	title := a.theme.ErrorHead.Render("explaindeck")
	dim := a.theme.Empty

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate article list / scroll card\n" +
		"  tab           Switch focus between list and card\n\n" +
		dim.Render("Actions") + "\n" +
		"  /             Search articles (filters as you type)\n" +
		"  s             Toggle sort (newest/oldest)\n" +
		"  d             Toggle dark/light theme\n" +
		"  r             Reload articles\n" +
		"  g             Generate a new article\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := a.theme.CardPane.Padding(1, 3).Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
