package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/kinetic/pkg/animation"
	"github.com/go-drift/kinetic/pkg/gestures"
	"github.com/go-drift/kinetic/pkg/scroll"
	"github.com/go-drift/kinetic/pkg/tuning"
)

// Layout constants. Offsets are in "pixels"; one text row is rowHeight
// pixels so the physics runs at a plausible touch-screen scale.
const (
	rowHeight   = 20.0
	headerRows  = 6
	listRows    = 120
	chromeRows  = 3 // status bar, help line, spacing
	framePeriod = 16 * time.Millisecond

	dragStep   = 60.0   // pixels per j/k press
	flingSpeed = 2400.0 // pixels/second per J/K press
)

type frameMsg time.Time

type tuningMsg tuning.Spec

type model struct {
	spec    tuning.Spec
	reloads chan tuning.Spec

	outer *scroll.Position
	inner *scroll.Position
	coord *scroll.Coordinator

	bouncing bool
	width    int
	height   int
	quitting bool
}

func newModel(spec tuning.Spec, reloads chan tuning.Spec) model {
	m := model{spec: spec, reloads: reloads}
	m.outer = scroll.NewPosition(scroll.PositionConfig{
		Physics: scroll.NewClampingPhysics(&spec),
		Label:   "header",
	})
	m.inner = scroll.NewPosition(scroll.PositionConfig{
		Physics: scroll.NewClampingPhysics(&spec),
		Label:   "list",
	})
	m.coord = scroll.NewCoordinator(m.outer)
	m.coord.AttachInner(m.inner)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(frameTick(), waitForReload(m.reloads))
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func waitForReload(reloads chan tuning.Spec) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		return tuningMsg(<-reloads)
	}
}

// layout recomputes the scroll ranges from the terminal size. The header
// collapses over its full extent minus one row that stays pinned; the
// list scrolls whatever does not fit below it.
func (m *model) layout() {
	if m.height == 0 {
		return
	}
	viewportPx := float64(m.height-chromeRows) * rowHeight
	headerPx := float64(headerRows) * rowHeight
	listPx := float64(listRows) * rowHeight

	m.outer.ApplyViewportDimension(viewportPx)
	m.outer.ApplyContentDimensions(0, headerPx-rowHeight)

	m.inner.ApplyViewportDimension(viewportPx)
	maxInner := listPx - (viewportPx - rowHeight)
	if maxInner < 0 {
		maxInner = 0
	}
	m.inner.ApplyContentDimensions(0, maxInner)
}

func (m *model) applyTuning(spec tuning.Spec) {
	m.spec = spec
	m.rebuildPhysics()
}

func (m *model) rebuildPhysics() {
	if m.bouncing {
		m.outer.SetPhysics(scroll.NewBouncingPhysics(&m.spec))
		m.inner.SetPhysics(scroll.NewBouncingPhysics(&m.spec))
		return
	}
	m.outer.SetPhysics(scroll.NewClampingPhysics(&m.spec))
	m.inner.SetPhysics(scroll.NewClampingPhysics(&m.spec))
}

// drag applies one synthetic drag step through the coordinator, the same
// path a pointer gesture would take.
func (m *model) drag(delta float64) {
	drag := m.coord.Drag(gestures.DragStartDetails{Timestamp: animation.Now()}, nil)
	if drag == nil {
		return
	}
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: delta, Timestamp: animation.Now()})
	drag.End(gestures.DragEndDetails{})
}

// fling releases a synthetic fling; velocity is in pointer coordinates.
func (m *model) fling(pointerVelocity float64) {
	drag := m.coord.Drag(gestures.DragStartDetails{Timestamp: animation.Now()}, nil)
	if drag == nil {
		return
	}
	drag.End(gestures.DragEndDetails{PrimaryVelocity: pointerVelocity})
}

func (m model) combinedMax() float64 {
	return m.outer.Metrics().MaxExtent + m.inner.Metrics().MaxExtent
}

func (m model) statusLine() string {
	physics := "clamping"
	if m.bouncing {
		physics = "bouncing"
	}
	return fmt.Sprintf("header %5.1f/%g  list %6.1f/%g  combined %6.1f  %s  %s/%s",
		m.outer.Pixels(), m.outer.Metrics().MaxExtent,
		m.inner.Pixels(), m.inner.Metrics().MaxExtent,
		m.coord.Offset(), physics,
		m.outer.Activity().Kind(), m.inner.Activity().Kind())
}
