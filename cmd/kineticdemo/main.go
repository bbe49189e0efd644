// Command kineticdemo is an interactive terminal playground for the scroll
// engine: a collapsing header coupled to a long list through a nested
// coordinator, driven by simulated drags and flings.
//
// Keys: j/k drag, J/K fling, g/G jump to the ends, a animate to the
// middle, b toggle bouncing physics, q quit. Pass a tuning YAML file as
// the first argument to tweak physics live; edits are hot-reloaded.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/kinetic/pkg/tuning"
)

func main() {
	var (
		spec    = tuning.Default()
		watcher *tuning.Watcher
		reloads chan tuning.Spec
	)
	if len(os.Args) > 1 {
		reloads = make(chan tuning.Spec, 4)
		var err error
		watcher, err = tuning.Watch(os.Args[1], func(s tuning.Spec) { reloads <- s })
		if err != nil {
			fmt.Fprintf(os.Stderr, "kineticdemo: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()
		spec = watcher.Current()
	}

	p := tea.NewProgram(newModel(spec, reloads), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "kineticdemo: %v\n", err)
		os.Exit(1)
	}
}
