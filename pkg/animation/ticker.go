// Package animation provides the frame-driven timing primitives and the
// continuous-time simulations that move scroll offsets.
//
// # Frame model
//
// Nothing in this package schedules its own goroutines. A host (an engine
// frame loop, a TUI tick message, a test harness) calls [StepTickers] once
// per rendered frame; every active [Ticker] then observes the elapsed time
// since it started and invokes its callback. Between frames an animation is
// simply dormant state.
//
// # Simulations
//
// A [Simulation] is a pure function of time: position via X, velocity via
// DX, and a settle predicate via IsDone. Simulations are sampled once per
// frame, never sub-stepped, so a dropped frame costs smoothness but not
// correctness. [FrictionSimulation] models a decelerating fling,
// [SpringSimulation] a damped spring, [ClampedSimulation] bounds another
// simulation, and [BouncingSimulation] chains friction into a spring for
// edge bounce.
package animation

import (
	"sync"
	"time"
)

// tickerRegistry is the set of tickers the frame pump drives. Membership
// changes under the mutex; the pump sweeps over a snapshot so callbacks
// may start and stop tickers freely.
type tickerRegistry struct {
	mu     sync.Mutex
	active map[*Ticker]struct{}
}

var registry = tickerRegistry{active: make(map[*Ticker]struct{})}

func (r *tickerRegistry) add(t *Ticker) {
	r.mu.Lock()
	r.active[t] = struct{}{}
	r.mu.Unlock()
}

func (r *tickerRegistry) remove(t *Ticker) {
	r.mu.Lock()
	delete(r.active, t)
	r.mu.Unlock()
}

func (r *tickerRegistry) snapshot() []*Ticker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.active) == 0 {
		return nil
	}
	tickers := make([]*Ticker, 0, len(r.active))
	for t := range r.active {
		tickers = append(tickers, t)
	}
	return tickers
}

func (r *tickerRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called. Tickers
// are driven by the host's frame loop via [StepTickers].
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates an inactive ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	registry.add(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	registry.remove(t)
}

// IsActive reports whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers and returns how many callbacks
// ran, so hosts can tell whether anything is still animating. The host
// calls this once per frame. A ticker stopped by an earlier callback in
// the same sweep is skipped.
func StepTickers() int {
	stepped := 0
	for _, ticker := range registry.snapshot() {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(Now().Sub(ticker.start))
			stepped++
		}
	}
	return stepped
}

// HasActiveTickers reports whether any tickers are active.
func HasActiveTickers() bool {
	return registry.size() > 0
}
