package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	nbpress "github.com/nbpress/go-nbpress"
	"github.com/nbpress/go-nbpress/internal/config"
)

// debounceWindow coalesces the burst of events editors emit on save.
const debounceWindow = 200 * time.Millisecond

// watch re-renders posts whenever their sources change, until ctx is
// cancelled. The posts directory and every post subdirectory are watched;
// directories created later are picked up from their create events.
func watch(ctx context.Context, pool *nbpress.RendererPool, cfg *config.Config, flags *cliFlags, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	postsDir := cfg.PostsDir()
	if err := watcher.Add(postsDir); err != nil {
		return fmt.Errorf("watching %s: %w", postsDir, err)
	}
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return fmt.Errorf("reading posts directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := watcher.Add(filepath.Join(postsDir, entry.Name())); err != nil {
			return fmt.Errorf("watching %s: %w", entry.Name(), err)
		}
	}

	logger.Info("watching for changes", "dir", postsDir)

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					_ = watcher.Add(event.Name)
				}
				continue
			}
			post, ok := postForSource(postsDir, event.Name)
			if !ok {
				continue
			}
			pending[post] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			posts := make([]string, 0, len(pending))
			for post := range pending {
				posts = append(posts, post)
			}
			clear(pending)
			if err := renderAll(ctx, pool, cfg, flags, posts, logger); err != nil {
				// A broken post should not stop the watch loop.
				logger.Error("render failed", "err", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "err", err)
		}
	}
}

// postForSource maps a changed file back to a renderable post path relative
// to the posts directory. Files outside post subdirectories and non-source
// extensions are ignored.
func postForSource(postsDir, name string) (string, bool) {
	if !sourceExtensions[strings.ToLower(filepath.Ext(name))] {
		return "", false
	}
	rel, err := filepath.Rel(postsDir, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if filepath.Dir(rel) == "." {
		return "", false
	}
	return rel, true
}
