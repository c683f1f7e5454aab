package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	contentWidth := max(20, m.width)

	header := titleStyle.Render(" plasma ─ procedural frame generator ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var body string
	if len(m.preview) > 0 {
		body = boxStyle.Render(strings.Join(m.preview, "\n"))
		body = lipgloss.PlaceHorizontal(contentWidth, lipgloss.Center, body)
	}

	counts := fmt.Sprintf(" %*d/%d ", len(fmt.Sprint(m.total)), m.done, m.total)
	if m.done > 0 && !m.finished {
		perFrame := m.elapsed / time.Duration(m.done)
		eta := perFrame * time.Duration(m.total-m.done)
		counts += dimStyle.Render("eta " + eta.Round(time.Second).String())
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, m.bar.ViewAs(m.percent()), counts)

	status := dimStyle.Render(" " + m.status + " ")
	if m.err != nil {
		status = errorStyle.Render(" " + m.status + " ")
	}
	footer := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, bar, footer)
	return appStyle.Width(contentWidth).Render(ui) + "\n"
}

func (m Model) renderHelp() string {
	if !m.helpVisible || m.finished {
		return ""
	}
	keys := []string{
		"q stop",
		"h help",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
