package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"plasma/internal/plasma"
	"plasma/internal/sink"
)

// Preview size in terminal cells; rows cover two pixel rows each.
const (
	previewCols = 64
	previewRows = 18
)

// ErrStopped is returned when the user quits before the last frame.
var ErrStopped = errors.New("tui: stopped by user")

// Run renders every frame of g into out while showing progress. describe
// returns the status line for a finished frame. out is closed before Run
// returns.
func Run(ctx context.Context, g *plasma.Generator, out sink.Sink, describe func(frame int) string, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := g.Config()
	p := tea.NewProgram(New(cfg.Frames), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	pv := NewPreviewer(previewCols, previewRows)

	result := make(chan error, 1)
	go func() {
		err := g.Run(ctx, func(frame, width int, data []byte) error {
			if err := out.WriteFrame(frame, width, data); err != nil {
				return err
			}
			p.Send(FrameMsg{Frame: frame, Status: describe(frame), Preview: pv.Lines(width, data)})
			return nil
		})
		err = errors.Join(err, out.Close())
		result <- err
		p.Send(DoneMsg{Err: err})
	}()

	final, perr := p.Run()
	cancel()
	err := <-result
	if m, ok := final.(Model); ok && m.Quitting() {
		return ErrStopped
	}
	if perr != nil && !errors.Is(perr, tea.ErrProgramKilled) {
		return errors.Join(err, fmt.Errorf("tui: %w", perr))
	}
	return err
}
