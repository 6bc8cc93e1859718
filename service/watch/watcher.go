// Package watch re-runs a handler whenever a local input file changes.
package watch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// ErrUnsupportedScheme is returned for inputs that do not live on the local file system.
var ErrUnsupportedScheme = errors.New("watch: only local files can be watched")

// Handler is invoked after the watched file changes.
type Handler func(ctx context.Context) error

// Watcher observes a single file. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
//
// The handler runs once the file has been quiet for the debounce period and
// only when its content differs from what the previous run left behind, so
// a handler writing back to the watched file does not trigger itself.
type Watcher struct {
	path       string
	handler    Handler
	debounce   time.Duration
	runOnStart bool
	fsNotify   *fsnotify.Watcher
	pending    chan struct{}
	mu         sync.Mutex
	timer      *time.Timer
	seen       string
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsNotify.Close()
	defer w.stop()
	if w.runOnStart {
		w.run(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsNotify.Events:
			if !ok {
				return nil
			}
			if w.matches(event) {
				w.schedule()
			}
		case <-w.pending:
			if w.changed() {
				w.run(ctx)
			}
		case err, ok := <-w.fsNotify.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

// schedule restarts the quiet period; only the last event of a burst fires.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.pending <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) changed() bool {
	hash, err := w.hash()
	if err != nil {
		return false
	}
	return hash != w.seen
}

func (w *Watcher) run(ctx context.Context) {
	if err := w.handler(ctx); err != nil {
		log.Printf("watch %s: %v", w.path, err)
	}
	w.seen, _ = w.hash()
}

func (w *Watcher) hash() (string, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// New creates a Watcher for location, which may be a local path or a file:// URL.
func New(location string, handler Handler, options ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler was nil")
	}
	URL := url.Normalize(location, file.Scheme)
	if scheme := url.Scheme(URL, file.Scheme); scheme != file.Scheme {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, location)
	}
	path, err := filepath.Abs(url.Path(URL))
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	ret := &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		debounce: 500 * time.Millisecond,
		fsNotify: fsWatcher,
		pending:  make(chan struct{}, 1),
	}
	for _, option := range options {
		option(ret)
	}
	ret.seen, _ = ret.hash()
	return ret, nil
}
