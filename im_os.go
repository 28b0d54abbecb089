package stage

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.hasen.dev/generic"
)

// file contents and things derived from them (decoded images, parsed skins)
// are cached per path and dropped when the file changes on disk.

var imosLock sync.RWMutex

// group content related to a file in a map so we can easily wipe all content
// cached based on the file
var filecontent = make(map[string]map[string]any)

type fileWatch struct {
	fn func()
}

// callbacks registered through WatchFile, by cleaned path
var fileWatchers = make(map[string][]*fileWatch)

var filesWatcher struct {
	sync.Once
	w   *fsnotify.Watcher
	err error
}

func watcher() (*fsnotify.Watcher, error) {
	filesWatcher.Do(func() {
		filesWatcher.w, filesWatcher.err = fsnotify.NewWatcher()
		if filesWatcher.err != nil {
			return
		}
		go watchLoop(filesWatcher.w)
	})
	return filesWatcher.w, filesWatcher.err
}

func watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if !e.Op.Has(fsnotify.Write) && !e.Op.Has(fsnotify.Create) &&
				!e.Op.Has(fsnotify.Remove) && !e.Op.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(e.Name)
			var callbacks []*fileWatch
			generic.WithWriteLock(&imosLock, func() {
				delete(filecontent, name) // invalidate it from cache!
				callbacks = append(callbacks, fileWatchers[name]...)
			})
			for _, cb := range callbacks {
				cb.fn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

func setFileCacheContent(fpath string, contentType string, value any) {
	imosLock.Lock()
	defer imosLock.Unlock()

	fpath = filepath.Clean(fpath)
	submap := filecontent[fpath]
	if submap == nil {
		submap = make(map[string]any)
	}
	submap[contentType] = value
	filecontent[fpath] = submap
}

func getFileCacheContent[T any](fpath string, contentType string) (T, bool) {
	imosLock.RLock()
	defer imosLock.RUnlock()

	var zero T
	submap, ok := filecontent[filepath.Clean(fpath)]
	if !ok {
		return zero, ok
	}
	content, ok := submap[contentType]
	if !ok {
		return zero, ok
	}
	typed, ok := content.(T)
	return typed, ok
}

// ReadFileContent reads a file through the cache. The containing directory
// is watched so edits invalidate the cached bytes.
func ReadFileContent(fpath string) ([]byte, error) {
	const key = "content"
	content, found := getFileCacheContent[[]byte](fpath, key)
	if found {
		return content, nil
	}

	content, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	if w, err := watcher(); err == nil {
		w.Add(filepath.Dir(fpath))
	}
	setFileCacheContent(fpath, key, content)
	return content, nil
}

// WatchFile calls fn (on the watcher goroutine) whenever fpath is written,
// created, removed or renamed. The returned function unregisters it.
func WatchFile(fpath string, fn func()) (func(), error) {
	w, err := watcher()
	if err != nil {
		return nil, err
	}
	fpath = filepath.Clean(fpath)
	if err := w.Add(filepath.Dir(fpath)); err != nil {
		return nil, err
	}

	entry := &fileWatch{fn: fn}
	generic.WithWriteLock(&imosLock, func() {
		fileWatchers[fpath] = append(fileWatchers[fpath], entry)
	})

	return func() {
		generic.WithWriteLock(&imosLock, func() {
			list := fileWatchers[fpath]
			generic.SliceRemove(&list, entry)
			fileWatchers[fpath] = list
		})
	}, nil
}
