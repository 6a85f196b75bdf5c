package observe

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher adapts fsnotify into the Watcher capability: every write of
// the page snapshot file is one whole-document mutation batch. Editors and
// exporters tend to fire several events per save, so emissions are
// debounced.
type FileWatcher struct {
	path     string
	region   Region
	debounce time.Duration
	log      *slog.Logger

	events chan Mutation

	mu        sync.Mutex
	connected bool
	started   bool
	fw        *fsnotify.Watcher
	timer     *time.Timer

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewFileWatcher watches path and reports mutations for region (normally
// RegionDocument).
func NewFileWatcher(path string, region Region, log *slog.Logger) *FileWatcher {
	if log == nil {
		log = slog.Default()
	}
	return &FileWatcher{
		path:     path,
		region:   region,
		debounce: 200 * time.Millisecond,
		log:      log,
		events:   make(chan Mutation, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Connect begins (or resumes) delivering events. The underlying fsnotify
// watcher is started once and kept running; reconnect after a disconnect is
// just a flag flip, cheap enough for the listing bracket.
func (w *FileWatcher) Connect() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		// Watch the directory: editors replace files on save, which drops
		// a watch registered on the file itself.
		if err := fw.Add(filepath.Dir(w.path)); err != nil {
			fw.Close()
			return err
		}
		w.fw = fw
		w.started = true
		go w.loop()
	}
	w.connected = true
	return nil
}

// Disconnect pauses delivery. Events observed while disconnected are
// dropped, not queued.
func (w *FileWatcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
}

// Close stops the underlying watcher for good.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = false
	w.connected = false
	if w.timer != nil {
		w.timer.Stop()
	}
	fw := w.fw
	w.mu.Unlock()

	close(w.stopCh)
	err := fw.Close()
	<-w.doneCh
	return err
}

func (w *FileWatcher) Events() <-chan Mutation { return w.events }

func (w *FileWatcher) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watch error", "path", w.path, "error", err)
		}
	}
}

func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// schedule arms (or re-arms) the debounce timer. A save burst keeps pushing
// the deadline back; the mutation is emitted once after the quiet period, so
// the reload always sees the burst's final content and the last write of a
// burst is never dropped.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.emit)
}

func (w *FileWatcher) emit() {
	w.mu.Lock()
	deliver := w.started && w.connected
	w.mu.Unlock()
	if !deliver {
		return
	}

	select {
	case w.events <- Mutation{Region: w.region, At: time.Now()}:
	default:
	}
}
