// Package watcher triggers registry reloads when files in the data
// directory change.
//
// New(dir, debounce, reload) starts watching dir with fsnotify.
// Watcher.Run(ctx) consumes filesystem events in a single goroutine and
// applies a trailing debounce: the reload runs once the debounce interval
// has elapsed since the last qualifying event, so a burst of rapid changes
// collapses into one reload after quiet settles.
//
// An event qualifies when its target is a direct child of the watched
// directory (no subdirectories), carries a recognized extension, and is not
// itself a directory. Create, write, remove, and rename all qualify alike;
// chmod is ignored.
//
// Reload failures are logged and the loop keeps running. Run returns when
// ctx is cancelled; reloads execute inside the loop, so none outlive it.
package watcher
