package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, m.width-24)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.finished {
				m.quitting = true
				m.status = "stopping after current frame"
			}
			return m, tea.Quit
		case "h":
			m.helpVisible = !m.helpVisible
		}
	case FrameMsg:
		m.done = msg.Frame + 1
		m.elapsed = time.Since(m.started)
		m.status = msg.Status
		if msg.Preview != nil {
			m.preview = msg.Preview
		}
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		m.elapsed = time.Since(m.started)
		if msg.Err != nil {
			m.status = "error: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("done: %d frames in %s", m.done, m.elapsed.Round(time.Millisecond))
		}
		return m, tea.Quit
	}
	return m, nil
}
