package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the record file watcher.
type WatcherConfig struct {
	// Patterns are the file paths, directories or globs to watch.
	Patterns []string

	// DebounceDelay is how long to wait for more changes before emitting.
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// ChangeOperation indicates the type of file operation.
type ChangeOperation string

const (
	OpCreate ChangeOperation = "create"
	OpModify ChangeOperation = "modify"
	OpDelete ChangeOperation = "delete"
)

// Change is one file affected within a debounce window.
type Change struct {
	Path      string
	Operation ChangeOperation
}

// ChangeSet groups the changes observed in one debounce window.
type ChangeSet struct {
	Changes []Change
}

// Paths returns the changed paths in sorted order.
func (c ChangeSet) Paths() []string {
	paths := make([]string, 0, len(c.Changes))
	for _, ch := range c.Changes {
		paths = append(paths, ch.Path)
	}
	return paths
}

// Watcher watches record files and emits debounced change sets.
type Watcher struct {
	config  WatcherConfig
	matcher *matcher
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation

	// content hashes for change detection
	hashMu sync.Mutex
	hashes map[string]string

	events   chan ChangeSet
	stopOnce sync.Once
}

// NewWatcher creates a record file watcher.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	m, err := newMatcher(config.Patterns)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 200 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		matcher: m,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan ChangeSet, 16),
	}, nil
}

// Events returns the channel of change sets.
func (w *Watcher) Events() <-chan ChangeSet {
	return w.events
}

// Start adds the watches and begins processing events until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	dirs, err := WatchDirs(w.config.Patterns)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.addWatches(dir, w.matcher.recursive); err != nil {
			return err
		}
	}

	w.seedHashes()

	go w.processEvents(ctx)

	w.logger.Info("Record watcher started",
		"dirs", dirs,
		"debounce", w.config.DebounceDelay)
	return nil
}

// Stop closes the watcher and its event channel.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) addWatches(root string, recursive bool) error {
	if !recursive {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// seedHashes records the current content of matching files so the first
// event for an untouched file is not reported.
func (w *Watcher) seedHashes() {
	files, err := ExpandPatterns(w.config.Patterns)
	if err != nil {
		return
	}
	for _, f := range files {
		if h, err := hashFile(f); err == nil {
			w.hashMu.Lock()
			w.hashes[f] = h
			w.hashMu.Unlock()
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) && w.matcher.recursive {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatches(path, true); err != nil {
				w.logger.Warn("Failed to watch new directory",
					"path", path,
					"error", err)
			}
			return
		}
	}

	if !w.matcher.match(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Record file change detected",
		"path", path,
		"op", event.Op.String())
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var set ChangeSet
	for path, op := range toProcess {
		if change, ok := w.classify(path, op); ok {
			set.Changes = append(set.Changes, change)
		}
	}
	if len(set.Changes) == 0 {
		return
	}
	sort.Slice(set.Changes, func(i, j int) bool {
		return set.Changes[i].Path < set.Changes[j].Path
	})

	select {
	case w.events <- set:
		w.logger.Debug("Sent change set", "files", len(set.Changes))
	default:
		w.logger.Warn("Event channel full, dropping change set",
			"files", len(set.Changes))
	}
}

// classify turns accumulated fsnotify ops into a change, skipping files
// whose content did not change.
func (w *Watcher) classify(path string, op fsnotify.Op) (Change, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()

	oldHash, hadHash := w.hashes[path]

	h, err := hashFile(path)
	if err != nil {
		if !hadHash {
			return Change{}, false
		}
		delete(w.hashes, path)
		return Change{Path: path, Operation: OpDelete}, true
	}

	if hadHash && oldHash == h {
		return Change{}, false
	}
	w.hashes[path] = h

	if !hadHash || op.Has(fsnotify.Create) {
		return Change{Path: path, Operation: OpCreate}, true
	}
	return Change{Path: path, Operation: OpModify}, true
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// matcher decides whether a path belongs to the watched patterns.
type matcher struct {
	globs     []string
	files     map[string]bool
	dirs      map[string]bool
	recursive bool
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{files: make(map[string]bool), dirs: make(map[string]bool)}
	for _, p := range patterns {
		if containsGlob(p) {
			abs, err := makeAbsolutePattern(p)
			if err != nil {
				return nil, err
			}
			if !doublestar.ValidatePattern(filepath.ToSlash(abs)) {
				return nil, doublestar.ErrBadPattern
			}
			m.globs = append(m.globs, filepath.ToSlash(abs))
			if strings.Contains(p, "**") {
				m.recursive = true
			}
			continue
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			m.dirs[abs] = true
		} else {
			m.files[abs] = true
		}
	}
	return m, nil
}

func (m *matcher) match(path string) bool {
	if m.files[path] {
		return true
	}
	if !IsRecordFile(path) {
		return false
	}
	if m.dirs[filepath.Dir(path)] {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, slashed); ok {
			return true
		}
	}
	return false
}
