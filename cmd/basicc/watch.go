package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/HicaroD/basicc/internal/config"
)

// Editors often save with several writes in a row.
const rebuildDelay = 100 * time.Millisecond

// watchedFiles returns the cleaned paths a rebuild depends on and the
// directories to watch for them. Directories are watched instead of the
// files so that saves which replace the file are seen.
func watchedFiles(args CliResult) (map[string]bool, []string) {
	files := map[string]bool{filepath.Clean(args.Input): true}
	if args.Source != "" {
		files[filepath.Clean(args.Source)] = true
	}

	seen := make(map[string]bool)
	var dirs []string
	for file := range files {
		dir := filepath.Dir(file)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return files, dirs
}

func watch(ctx context.Context, args CliResult, opts config.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "starting watcher")
	}
	defer watcher.Close()

	files, dirs := watchedFiles(args)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
	}

	rebuild := func() {
		if err := build(ctx, args, opts); err != nil {
			log.Printf("build failed: %s", err)
			return
		}
		log.Printf("wrote %s", args.Output)
	}
	rebuild()

	timer := time.NewTimer(rebuildDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(rebuildDelay)
		case <-timer.C:
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %s", err)
		}
	}
}
