package watch

import "time"

// Option configures a Watcher
type Option func(w *Watcher)

// WithDebounce sets how long the file must stay quiet before the handler runs
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithRunOnStart runs the handler once when Run starts
func WithRunOnStart() Option {
	return func(w *Watcher) {
		w.runOnStart = true
	}
}
