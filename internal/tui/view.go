package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apisnip/apisnip/internal/rank"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true).Italic(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	pathStyle     = lipgloss.NewStyle().Bold(true)

	methodStyles = map[string]lipgloss.Style{
		"GET":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"POST":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"PUT":    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"PATCH":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"DELETE": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"HEAD":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
	fallbackMethodStyle = lipgloss.NewStyle().Italic(true)
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewTable())
	b.WriteString(m.viewDetail())
	if m.searching {
		b.WriteString("\n" + m.search.View())
	}
	b.WriteString("\n" + m.viewFooter())
	return b.String()
}

func (m Model) viewTable() string {
	var b strings.Builder

	title := fmt.Sprintf(" %d endpoints for %s ", len(m.visible), m.infile)
	b.WriteString(titleStyle.Render(title) + "\n")

	summaryWidth, pathWidth := m.columnWidths()
	b.WriteString(headerStyle.Render(
		pad("    Summary", summaryWidth)+pad("Path", pathWidth)+"Method") + "\n")

	rows := m.tableRows()
	end := min(m.offset+rows, len(m.visible))

	if len(m.visible) == 0 {
		b.WriteString("  No endpoints match your search.\n")
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.viewRow(m.visible[i], i == m.cursor, summaryWidth, pathWidth) + "\n")
	}
	for i := end - m.offset; i < rows; i++ {
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRow(item rank.Item, current bool, summaryWidth, pathWidth int) string {
	marker := "    "
	if m.selection[item.Endpoint] {
		marker = " ✂  "
	}

	summary := item.Summary
	if summary == "" {
		summary = item.Description
	}
	line := pad(marker+summary, summaryWidth) +
		pad(item.Endpoint.Path, pathWidth) +
		item.Endpoint.Method

	switch {
	case current:
		return cursorStyle.Render(pad(line, m.width))
	case m.selection[item.Endpoint]:
		return selectedStyle.Render(line)
	}
	return line
}

func (m Model) viewDetail() string {
	var lines []string

	if m.cursor < len(m.visible) {
		item := m.visible[m.cursor]
		op := m.ops[item.Endpoint]

		summary := item.Summary
		if summary == "" {
			summary = item.Description
		}
		lines = append(lines, summary, "")
		lines = append(lines, pathStyle.Render(item.Endpoint.Path))
		lines = append(lines, methodLine(item.Endpoint.Method, op.Description))

		params := m.pathItems[item.Endpoint.Path].Parameters()
		params = append(params, op.Parameters()...)
		if len(params) > 0 {
			lines = append(lines, "", "Parameters: "+strings.Join(params, ", "))
		}
		if refs := op.Refs(); len(refs) > 0 {
			lines = append(lines, "", "Component refs: "+strings.Join(refs, ", "))
		}
	} else {
		lines = append(lines, "No endpoint under the cursor.")
	}

	header := strings.Repeat("─", max(0, m.width-1))
	if n := m.selectedCount(); n > 0 {
		label := fmt.Sprintf(" %s endpoints selected ", countStyle.Render(fmt.Sprint(n)))
		header = truncate(header, max(0, m.width-lipgloss.Width(label)-2)) + label
	}

	body := strings.Join(lines, "\n")
	return header + "\n" + lipgloss.NewStyle().
		Height(detailHeight-1).
		MaxHeight(detailHeight-1).
		PaddingLeft(1).
		Render(body)
}

func (m Model) viewFooter() string {
	return footerStyle.Render(" space ✂ snip · w write and quit · / search · ↑/↓ move · q quit")
}

func methodLine(method, description string) string {
	style, ok := methodStyles[method]
	if !ok {
		style = fallbackMethodStyle
	}
	return style.Bold(true).Render(pad(method, 7)) + description
}

func (m Model) columnWidths() (summary, path int) {
	// Two flexible columns plus a narrow fixed one for the method.
	usable := max(20, m.width-8)
	return usable * 45 / 100, usable * 45 / 100
}

func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = truncate(s, width-1)
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
