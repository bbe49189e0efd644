package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/kinetic/pkg/animation"
	"github.com/go-drift/kinetic/pkg/tuning"
)

// Update handles messages and advances the frame loop.
//
//nolint:ireturn // Bubble Tea requires returning the tea.Model interface.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case frameMsg:
		animation.StepTickers()
		return m, frameTick()

	case tuningMsg:
		m.applyTuning(tuning.Spec(msg))
		return m, waitForReload(m.reloads)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.coord.Dispose()
		m.outer.Dispose()
		m.inner.Dispose()
		return m, tea.Quit

	case "j", "down":
		m.drag(-dragStep)
	case "k", "up":
		m.drag(dragStep)

	case "J", "pgdown":
		m.fling(-flingSpeed)
	case "K", "pgup":
		m.fling(flingSpeed)

	case "g", "home":
		m.coord.JumpTo(0)
	case "G", "end":
		m.coord.JumpTo(m.combinedMax())

	case "a":
		m.coord.AnimateTo(m.combinedMax()/2, 600*time.Millisecond, nil)

	case "b":
		m.bouncing = !m.bouncing
		m.rebuildPhysics()
	}
	return m, nil
}
