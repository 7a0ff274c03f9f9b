// Package watch re-validates template files as they change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	eventChannelBuffer = 256
	defaultDebounce    = 300 * time.Millisecond
)

// Config configures template file watching.
type Config struct {
	// Debounce is how long changes accumulate before events are emitted.
	Debounce time.Duration
	// Extensions lists the file extensions treated as templates.
	Extensions []string
	// ExcludeDirs lists directory names that are never watched.
	ExcludeDirs []string
}

// DefaultConfig returns the stock watch configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:    defaultDebounce,
		Extensions:  []string{".json", ".yaml", ".yml"},
		ExcludeDirs: []string{".git", "node_modules", "vendor"},
	}
}

// Op is the kind of change an Event reports.
type Op string

const (
	OpCreate Op = "create"
	OpModify Op = "modify"
	OpDelete Op = "delete"
)

// Event is one debounced template file change.
type Event struct {
	// Path is relative to the watched root.
	Path    string
	AbsPath string
	Op      Op
}

// Watcher emits an Event whenever a template file under root changes
// content. Writes that leave the content identical are ignored.
type Watcher struct {
	config     Config
	root       string
	fsw        *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
	excludes   map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events  chan Event
	dropped atomic.Int64
}

// New creates a Watcher for root. Zero Config members take the defaults.
func New(root string, config Config, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultConfig()
	if config.Debounce <= 0 {
		config.Debounce = defaults.Debounce
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
	if len(config.ExcludeDirs) == 0 {
		config.ExcludeDirs = defaults.ExcludeDirs
	}

	extensions := make(map[string]bool, len(config.Extensions))
	for _, ext := range config.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}
	excludes := make(map[string]bool, len(config.ExcludeDirs))
	for _, dir := range config.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		config:     config,
		root:       root,
		fsw:        fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of debounced changes. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start records the current content of every template file under root and
// begins watching. Events flow until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}
	go w.processEvents(ctx)

	w.logger.Info("template watcher started",
		slog.String("root", w.root),
		slog.Duration("debounce", w.config.Debounce))
	return nil
}

// Stop closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// DroppedEvents returns the number of events dropped because the channel was
// full.
func (w *Watcher) DroppedEvents() int64 {
	return w.dropped.Load()
}

func (w *Watcher) isTemplate(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	return w.excludes[base] || (strings.HasPrefix(base, ".") && base != "." && path != w.root)
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if w.isTemplate(path) {
				if content, err := os.ReadFile(path); err == nil {
					w.setHash(w.rel(path), contentHash(content))
				}
			}
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))
		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name
	if !w.isTemplate(path) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.skipDir(path) {
				if err := w.addWatchesRecursive(path); err != nil {
					w.logger.Warn("failed to watch new directory", slog.String("path", path), slog.String("error", err.Error()))
				}
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range toProcess {
		if ctx.Err() != nil {
			return
		}
		rel := w.rel(path)
		event := Event{Path: rel, AbsPath: path}

		content, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				w.logger.Warn("failed to read template", slog.String("path", rel), slog.String("error", err.Error()))
				continue
			}
			if _, tracked := w.hash(rel); !tracked {
				continue
			}
			w.deleteHash(rel)
			event.Op = OpDelete
			w.send(event)
			continue
		}

		newHash := contentHash(content)
		oldHash, tracked := w.hash(rel)
		if tracked && oldHash == newHash {
			continue
		}
		w.setHash(rel, newHash)

		event.Op = OpModify
		if !tracked {
			event.Op = OpCreate
		}
		w.send(event)
	}
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("template changed", slog.String("path", event.Path), slog.String("op", string(event.Op)))
	default:
		dropped := w.dropped.Add(1)
		w.logger.Warn("event channel full, dropping event", slog.String("path", event.Path), slog.Int64("total_dropped", dropped))
	}
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) hash(rel string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	h, ok := w.hashes[rel]
	return h, ok
}

func (w *Watcher) setHash(rel, h string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[rel] = h
}

func (w *Watcher) deleteHash(rel string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, rel)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
