// File: watch.go
// Title: File Watching
// Description: fsnotify based change notification for single files and
//              configuration reloading on top of it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation of file watching

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

// DebounceInterval collapses bursts of events (editors often write a file
// in several steps) into one notification
var DebounceInterval = 100 * time.Millisecond

// WatchFile calls onChange every time path is written, created or renamed
// into place. The parent directory is watched so that atomic-save editors
// are seen. It blocks until ctx is done.
func WatchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeIOError).
			WithOperation("config.WatchFile")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeIOError).
			WithOperation("config.WatchFile").
			WithDetail("path", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeIOError).
			WithOperation("config.WatchFile").
			WithDetail("path", path)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
			} else {
				timer.Reset(DebounceInterval)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return mdwerror.Wrap(err, "file watcher failed").
				WithCode(mdwerror.CodeIOError).
				WithOperation("config.WatchFile").
				WithDetail("path", path)
		}
	}
}

// ChangeHandler receives the reloaded configuration, or the error that
// prevented reloading it
type ChangeHandler func(cfg *Config, err error)

// Watch reloads the configuration file at path on every change and passes
// the result to fn. It blocks until ctx is done.
func Watch(ctx context.Context, path string, options LoadOptions, fn ChangeHandler) error {
	return WatchFile(ctx, path, func() {
		fn(LoadWithOptions(path, options))
	})
}
