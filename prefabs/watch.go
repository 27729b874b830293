package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay is how long a prefab file must stay quiet before its change is
// reported. Editors often save in several writes.
const settleDelay = 150 * time.Millisecond

// Watcher reports changed prefab files on Events once each file settles.
// Consumers poll the channels from the game loop; a full channel drops the
// report rather than blocking the watcher goroutine.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *zap.Logger
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		log:     log,
		Events:  make(chan string, len(EntityPrefabs)+1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	log.Info("watching prefabs", zap.Strings("dirs", dirs))
	return w, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]struct{})
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isPrefabFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			settle.Reset(settleDelay)
		case <-settle.C:
			for name := range pending {
				select {
				case w.Events <- name:
				default:
					w.log.Warn("prefab change dropped", zap.String("file", name))
				}
			}
			clear(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// isPrefabFile reports whether path names one of the files a Library loads.
func isPrefabFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	if filepath.Base(path) == StageFile {
		return true
	}
	return slices.Contains(EntityPrefabs, prefabName(path))
}
