package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch reloads the dictionary whenever its file changes. The directory is
// watched rather than the file so editors that replace the file on save are
// still noticed. The returned stop function blocks until the watcher exits.
func (a *App) watch(ctx context.Context) (func(), error) {
	target, err := filepath.Abs(a.config.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("error resolving dictionary path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if name, _ := filepath.Abs(event.Name); name != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				a.reload(ctx)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.logger.Warn("dictionary watcher error", zap.Error(err))
			}
		}
	}()

	a.logger.Info("watching dictionary", zap.String("path", target))

	return func() {
		close(stopCh)
		<-doneCh
		watcher.Close()
	}, nil
}

// reload replaces the dictionary and generator. On failure the previous ones stay in use.
func (a *App) reload(ctx context.Context) bool {
	dict, err := a.loadDictionary(ctx)
	if err != nil {
		a.logger.Warn("dictionary reload failed, keeping previous dictionary", zap.Error(err))
		return false
	}
	gen, err := a.buildGenerator(dict)
	if err != nil {
		a.logger.Warn("dictionary reload failed, keeping previous dictionary", zap.Error(err))
		return false
	}

	a.mu.Lock()
	a.dict, a.gen = dict, gen
	a.mu.Unlock()

	a.reloads.Add(1)
	a.logger.Info("dictionary reloaded", zap.Int("classes", dict.Bank.Len()))
	return true
}
