package host

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event は監視対象の変化 1 件です。Config が真なら設定ファイルの変更、
// 偽なら走査対象ドキュメントの変更を表します。
type Event struct {
	Path   string
	Config bool
	Time   time.Time
}

// Watcher は設定ファイルと走査対象のファイル群を監視し、
// 変更をひとつのチャネルに集約します。
type Watcher struct {
	watcher    *fsnotify.Watcher
	events     chan Event
	stop       chan struct{}
	configPath string
	docPaths   map[string]struct{}
	// 連続する書き込みをまとめるための最小間隔
	debounce time.Duration
	lastSeen map[string]time.Time
}

// NewWatcher creates a watcher for the given config file (may be empty)
// and document paths.
func NewWatcher(configPath string, paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("init watcher: %w", err)
	}
	w := &Watcher{
		watcher:    fw,
		events:     make(chan Event, 16),
		stop:       make(chan struct{}),
		configPath: configPath,
		docPaths:   make(map[string]struct{}, len(paths)),
		debounce:   100 * time.Millisecond,
		lastSeen:   make(map[string]time.Time),
	}
	if configPath != "" {
		// エディタの atomic save（rename で置換）を拾うため
		// ファイル本体ではなく親ディレクトリを監視する
		if err := fw.Add(filepath.Dir(configPath)); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch config dir: %w", err)
		}
	}
	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		if abs, err := filepath.Abs(p); err == nil {
			w.docPaths[abs] = struct{}{}
		}
	}
	return w, nil
}

// Start begins forwarding events until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Events returns the aggregated event channel.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher and closes the underlying resources.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
		_ = w.watcher.Close()
	}
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.forward(event.Name)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// keep watching; transient errors are not fatal
		}
	}
}

func (w *Watcher) forward(path string) {
	now := time.Now()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < w.debounce {
		return
	}
	w.lastSeen[path] = now

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	isConfig := w.configPath != "" && sameFile(path, w.configPath)
	if !isConfig {
		if _, watched := w.docPaths[abs]; !watched {
			// 設定ディレクトリの監視で届いた無関係なファイルは無視する
			return
		}
	}
	select {
	case w.events <- Event{Path: path, Config: isConfig, Time: now}:
	default:
		// チャネルが詰まっている間の変更は次の走査がまとめて拾う
	}
}

func sameFile(a, b string) bool {
	ca, err := filepath.Abs(a)
	if err != nil {
		return a == b
	}
	cb, err := filepath.Abs(b)
	if err != nil {
		return a == b
	}
	return ca == cb
}
