package orchestrator

import (
	"context"
	"os"
	"path/filepath"

	"recase/internal/scanner"
	"recase/internal/watcher"
)

// Watch re-applies the replacement whenever a watched file changes, until
// ctx is cancelled. Directory operands are watched along with, when
// recursion is enabled, every subdirectory present at start.
func (o *Orchestrator) Watch(ctx context.Context) (*watcher.WatchSummary, error) {
	dirs, files := o.watchTargets()

	w := watcher.New(&watcher.WatchConfig{
		Debounce:       o.opts.Debounce,
		IgnorePatterns: o.opts.IgnorePatterns,
	}, o.handleChange)
	w.OnError(func(path string, err error) {
		if path == "" {
			o.out.Error("watch: %v", err)
			return
		}
		o.out.Error("%s: %v", path, err)
	})
	w.Accept(func(path string) bool {
		if files[path] {
			return true
		}
		return dirs[filepath.Dir(path)] && !o.hidden(filepath.Base(path))
	})

	watchDirs := make([]string, 0, len(dirs)+len(files))
	seen := make(map[string]bool)
	for d := range dirs {
		seen[d] = true
		watchDirs = append(watchDirs, d)
	}
	for f := range files {
		if d := filepath.Dir(f); !seen[d] {
			seen[d] = true
			watchDirs = append(watchDirs, d)
		}
	}

	if err := w.Start(watchDirs); err != nil {
		return nil, err
	}
	o.out.Info("Watching %d directories for changes (Ctrl+C to stop)", len(watchDirs))

	<-ctx.Done()
	return w.Stop(), nil
}

func (o *Orchestrator) handleChange(path string) (bool, error) {
	if o.wroteCurrent(path) {
		return false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil // removed before the debounce fired
	}
	res, err := o.RewritePath(path)
	if err != nil {
		return false, err
	}
	if res.Changed {
		o.out.Info("%s: %d replacements", path, res.Stats.Total())
	}
	return res.Changed, nil
}

// watchTargets splits the path operands into directories whose contents
// are handled and individual files.
func (o *Orchestrator) watchTargets() (dirs map[string]bool, files map[string]bool) {
	dirs = make(map[string]bool)
	files = make(map[string]bool)

	for _, p := range o.opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			o.out.Warn("not watching %s: %v", p, err)
			continue
		}
		if !info.IsDir() {
			files[abs] = true
			continue
		}
		dirs[abs] = true
		if o.opts.Recursive {
			o.addSubdirectories(abs, 1, dirs)
		}
	}
	return dirs, files
}

func (o *Orchestrator) addSubdirectories(dir string, depth int, dirs map[string]bool) {
	if o.opts.MaxDepth != -1 && depth > o.opts.MaxDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() || o.hidden(e.Name()) {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		dirs[sub] = true
		o.addSubdirectories(sub, depth+1, dirs)
	}
}

// hidden reports whether a directory entry is excluded by the hidden-file rule.
func (o *Orchestrator) hidden(name string) bool {
	return !o.opts.IncludeHidden && scanner.IsHidden(name)
}
