package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg reports a frame that has been rendered and persisted.
type FrameMsg struct {
	Frame   int
	Status  string
	Preview []string
}

// DoneMsg ends the run; Err is nil on success.
type DoneMsg struct {
	Err error
}

type Model struct {
	width  int
	height int

	total   int
	done    int
	started time.Time
	elapsed time.Duration

	status  string
	preview []string
	bar     progress.Model

	helpVisible bool
	finished    bool
	quitting    bool
	err         error
}

func New(total int) Model {
	return Model{
		total:       total,
		started:     time.Now(),
		status:      "plasma ready",
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpVisible: true,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Err returns the run error delivered by DoneMsg.
func (m Model) Err() error { return m.err }

// Quitting reports whether the user asked to stop before the run finished.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}
