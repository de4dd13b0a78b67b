package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vocab/internal/gate"
	"github.com/five82/vocab/internal/ready"
)

// Run starts the Bubble Tea program and blocks until it exits. Every
// message passes through gate.Observe so the first key press or click
// anywhere opens the gate.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}
	dispatch := opts.Dispatcher
	if dispatch == nil {
		dispatch = ready.Goroutine
	}

	// Program.Send blocks until the event loop receives, so it must never
	// run on the loop itself.
	var p *tea.Program
	send := func(msg tea.Msg) {
		dispatch.Post(func() { p.Send(msg) })
	}

	m := New(opts, send)
	p = tea.NewProgram(gate.Observe(m, opts.Gate),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	m.listen()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
