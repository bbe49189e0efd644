package tuning

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	kerrors "github.com/go-drift/kinetic/pkg/errors"
)

// Watcher reloads a tuning file whenever it changes on disk, so scroll
// feel can be adjusted live while an app is running.
//
// The watcher validates every reload; a broken edit is reported through
// the errors package and the previous spec stays in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	current Spec
	onSpec  func(Spec)
	done    chan struct{}
}

// Watch loads path and begins watching it for changes. onSpec is invoked
// with the initial spec and again after every valid reload. Call Close to
// stop watching.
func Watch(path string, onSpec func(Spec)) (*Watcher, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops
	// watches registered on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		current: spec,
		onSpec:  onSpec,
		done:    make(chan struct{}),
	}
	if onSpec != nil {
		onSpec(spec)
	}
	go w.loop()
	return w, nil
}

// Current returns the most recently loaded valid spec.
func (w *Watcher) Current() Spec {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			kerrors.Report(&kerrors.ScrollError{
				Op: "tuning.Watcher", Kind: kerrors.KindConfig, Err: err,
			})
		}
	}
}

func (w *Watcher) reload() {
	spec, err := Load(w.path)
	if err != nil {
		kerrors.Report(&kerrors.ScrollError{
			Op: "tuning.Watcher.reload", Kind: kerrors.KindConfig, Err: err,
		})
		return
	}
	w.mu.Lock()
	w.current = spec
	onSpec := w.onSpec
	w.mu.Unlock()
	if onSpec != nil {
		onSpec(spec)
	}
}
