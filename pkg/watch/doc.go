// Package watch provides watch mode: monitor sources, recompile on change.
//
// # Overview
//
// A Watcher observes a source file or directory tree with fsnotify and
// recompiles matching files when they change. Changes are debounced per
// file, so an editor writing a file several times in quick succession
// produces a single compile.
//
// # Usage
//
//	cfg := watch.DefaultConfig()
//	cfg.Path = "ui/"
//	cfg.OnResult = func(r *compiler.Result) {
//	    fmt.Printf("built %s (%d bytes)\n", r.Document, len(r.Output))
//	}
//
//	w, err := watch.NewWatcher(cfg, comp, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	// Blocks until ctx is cancelled.
//	return w.Watch(ctx)
package watch
