package catalog

import (
	"github.com/fsnotify/fsnotify"

	"javiradio/logger"
)

// Watch rebuilds the catalog whenever files appear in or disappear from
// the audio directory. This is advisory: the request path still rebuilds
// on every main-page load, the watcher just keeps the store warm between
// visits. Close the returned watcher to stop.
func (b *Builder) Watch(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Info("audio directory changed, rebuilding catalog",
						logger.String("event", event.String()))
					b.Rebuild(dir)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("audio directory watcher error", logger.ErrorField(err))
			}
		}
	}()

	return watcher, nil
}
