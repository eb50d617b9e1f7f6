package prefabs

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports edited prefab and script files. It only forwards base
// names; reloading is left to the owner of the data, on its own goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs. Missing directories are skipped with a log line
// so a build without an on-disk prefab tree still runs.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	added := 0
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			log.Printf("prefabs: not watching %s: %v", dir, err)
			continue
		}
		added++
	}
	if added == 0 {
		_ = fw.Close()
		return nil, ErrNothingToWatch
	}

	w := &Watcher{
		watcher: fw,
		events:  make(chan string, 16),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changed returns the files changed since the last call without blocking.
// Duplicate names are collapsed.
func (w *Watcher) Changed() []string {
	if w == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case name, ok := <-w.events:
			if !ok {
				return out
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		default:
			return out
		}
	}
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.events <- filepath.Base(event.Name):
			default:
				// dropped while the consumer is behind
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("prefabs: watcher: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
