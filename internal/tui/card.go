package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"explaindeck/internal/article"
)

// renderCard maps one record to its display card: title, summary,
// bulleted sections, code blocks, metadata footer. Sections whose
// source sequence is empty are omitted entirely.
func renderCard(theme Theme, rec *article.Record, width, height, scroll int) string {
	if rec == nil {
		return centerText(theme.Empty.Render("Select an article"), width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	var blocks []string
	blocks = append(blocks, theme.CardTitle.Width(contentWidth).Render(rec.DisplayTitle()))

	if summary := rec.Summary(); summary != "" {
		blocks = append(blocks, theme.CardSummary.Width(contentWidth).Render(wrapText(summary, contentWidth)))
	}

	if p := rec.Parsed; p != nil {
		if sec := bulletSection(theme, "Key Points", p.KeyPoints, contentWidth); sec != "" {
			blocks = append(blocks, sec)
		}
		if sec := codeSection(theme, p.CodeExamples, contentWidth); sec != "" {
			blocks = append(blocks, sec)
		}
		if sec := bulletSection(theme, "Version Notes", p.VersionNotes, contentWidth); sec != "" {
			blocks = append(blocks, sec)
		}
		if sec := bulletSection(theme, "Caveats", p.Caveats, contentWidth); sec != "" {
			blocks = append(blocks, sec)
		}
	}

	blocks = append(blocks, theme.Footer.Width(contentWidth).Render(cardFooter(rec)))

	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	// Apply scroll offset and pad to fill height
	lines := strings.Split(content, "\n")
	if scroll > 0 {
		if scroll >= len(lines) {
			scroll = len(lines) - 1
		}
		lines = lines[scroll:]
	}
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func bulletSection(theme Theme, title string, items []string, width int) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.SectionHead.Render(title))
	for _, item := range items {
		if item == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(theme.Bullet.Width(width).Render("• " + wrapText(item, width-2)))
	}
	return b.String()
}

func codeSection(theme Theme, examples []article.CodeExample, width int) string {
	blocks := make([]string, 0, len(examples))
	for _, ex := range examples {
		if ex.Code == "" {
			continue
		}
		var b strings.Builder
		if ex.Language != "" {
			b.WriteString(theme.CodeLang.Render(ex.Language))
			b.WriteString("\n")
		}
		b.WriteString(theme.CodeBlock.Width(width).Render(strings.TrimRight(ex.Code, "\n")))
		blocks = append(blocks, b.String())
	}
	if len(blocks) == 0 {
		return ""
	}

	return theme.SectionHead.Render("Code Examples") + "\n" + strings.Join(blocks, "\n\n")
}

// cardFooter builds the metadata line: model, source file, and a
// human-readable local timestamp.
func cardFooter(rec *article.Record) string {
	parts := []string{}
	if rec.Model != "" {
		parts = append(parts, rec.Model)
	}
	if rec.Source != "" {
		parts = append(parts, rec.Source)
	}
	if !rec.TimestampUTC.IsZero() {
		parts = append(parts, rec.TimestampUTC.Local().Format("Jan 2, 2006 15:04"))
	}
	return strings.Join(parts, " · ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
