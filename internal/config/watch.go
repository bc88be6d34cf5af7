// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// DefaultWatchDebounce is the quiet period after the last write before the
// file is reloaded. Editors often write a file in several steps.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watch reloads the config file at path whenever it changes and reports the
// result to onChange. A file that fails to load or validate is reported with
// a nil Config and the error; the caller keeps its previous config.
//
// The parent directory is watched rather than the file so that editors which
// replace the file by rename are followed. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	return watch(ctx, path, DefaultWatchDebounce, onChange)
}

func watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config, error)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			onChange(LoadFromPath(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("watching %s: %w", path, err))
		}
	}
}
