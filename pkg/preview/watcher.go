package preview

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Watcher polls a directory for changed, added and removed *.json scripts.
type Watcher struct {
	dir      string
	interval time.Duration

	mu         sync.Mutex
	onChange   func(paths []string)
	running    bool
	scanned    bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a watcher over dir. A non-positive interval defaults
// to 500ms.
func NewWatcher(dir string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		dir:        dir,
		interval:   interval,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for a batch of changed paths.
func (w *Watcher) OnChange(fn func(paths []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.Scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			if changed := w.Scan(); len(changed) > 0 {
				w.mu.Lock()
				callback := w.onChange
				w.mu.Unlock()
				if callback != nil {
					callback(changed)
				}
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// Scan compares the directory with the previous scan and returns the
// changed paths, sorted. The first scan only records timestamps.
func (w *Watcher) Scan() []string {
	paths, _ := filepath.Glob(filepath.Join(w.dir, "*.json"))

	current := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		current[p] = info.ModTime()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	first := !w.scanned
	w.scanned = true
	var changed []string
	for p, mod := range current {
		if last, ok := w.timestamps[p]; !ok || !mod.Equal(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.timestamps {
		if _, ok := current[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.timestamps = current

	if first {
		return nil
	}
	sort.Strings(changed)
	return changed
}
