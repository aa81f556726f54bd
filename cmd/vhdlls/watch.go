package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// watchAndRerun watches paths directly (fsnotify supports watching
// individual files, not just directories) and re-invokes run after every
// write/create event, debounced the way
// internal/indexing/watcher.go's eventDebouncer batches bursts of events
// from a single save into one rerun instead of one per fsnotify callback.
// It returns when interrupted (Ctrl-C / SIGTERM).
func watchAndRerun(paths []string, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("vhdlls: starting file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			fmt.Fprintf(os.Stderr, "vhdlls: watch %s: %v\n", p, err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-sigs:
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "vhdlls: watcher error: %v\n", err)

		case <-fire:
			run()
		}
	}
}
