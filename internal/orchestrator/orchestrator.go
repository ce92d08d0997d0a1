// Package orchestrator coordinates a recase run: it builds the pattern
// table, resolves inputs and drives the replacer over them.
package orchestrator

import (
	"fmt"
	"io"
	"sync"
	"time"

	"recase/internal/config"
	"recase/internal/output"
	"recase/internal/replacer"
	"recase/internal/rewriter"
	"recase/internal/scanner"
	"recase/internal/table"
)

// Orchestrator runs the replacement workflow for one set of options.
type Orchestrator struct {
	opts     *config.Options
	table    *table.Table
	replacer *replacer.Replacer
	out      *output.Output
	stdin    io.Reader
	stdout   io.Writer

	// written maps paths this run rewrote to the fingerprint of the content
	// it left there, so watch mode can ignore its own writes.
	mu      sync.Mutex
	written map[string]string
}

// New validates opts and prepares the pattern table and replacer.
func New(opts *config.Options, out *output.Output, stdin io.Reader, stdout io.Writer) (*Orchestrator, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for _, w := range config.ValidateOptions(opts).Warnings {
		out.Warn("%s", w.Err)
	}

	tbl, err := table.Build(opts.Search, opts.Replacement)
	if err != nil {
		return nil, err
	}
	r, err := replacer.New(tbl.Patterns, tbl.Replacements)
	if err != nil {
		return nil, fmt.Errorf("failed to build replacer: %w", err)
	}

	for _, e := range tbl.Entries() {
		out.Verbose("%-13s %s -> %s", e.Convention, e.Pattern, e.Replacement)
	}

	return &Orchestrator{
		opts:     opts,
		table:    tbl,
		replacer: r,
		out:      out,
		stdin:    stdin,
		stdout:   stdout,
		written:  make(map[string]string),
	}, nil
}

// Table returns the pattern table in use.
func (o *Orchestrator) Table() *table.Table {
	return o.table
}

// Run processes stdin, or every file resolved from the path operands.
// Per-file failures are recorded in the summary; only failures that stop
// the whole run are returned as errors.
func (o *Orchestrator) Run() (*Summary, error) {
	start := time.Now()
	summary := newSummary(o.table)

	if len(o.opts.Paths) == 0 {
		stats, err := o.replacer.Replace(o.stdout, o.stdin)
		summary.addStats(stats)
		summary.Duration = time.Since(start)
		return summary, err
	}

	files, scanErrs := scanner.Resolve(o.opts.Paths, o.scanOptions())
	for _, err := range scanErrs {
		if scanner.IsSkipped(err) {
			o.out.Warn("%v", err)
			continue
		}
		summary.ScanErrors = append(summary.ScanErrors, err)
	}
	summary.TotalFiles = len(files)

	o.out.StartProgress(len(files))
	for i, file := range files {
		o.out.UpdateProgress(i+1, "")
		summary.record(o.processFile(file.FullPath))
	}
	o.out.EndProgress()

	summary.Duration = time.Since(start)
	return summary, nil
}

func (o *Orchestrator) scanOptions() scanner.ScanOptions {
	opts := scanner.DefaultScanOptions()
	opts.MaxDepth = o.opts.ScanDepth()
	opts.SymlinkPolicy = o.opts.SymlinkPolicy
	opts.IncludeHidden = o.opts.IncludeHidden
	return opts
}

// processFile handles one file according to the in-place setting.
func (o *Orchestrator) processFile(path string) Result {
	if !o.opts.InPlace {
		res, err := rewriter.StreamFile(path, o.replacer, o.stdout)
		if err != nil {
			o.out.Error("%v", err)
			return Result{SourcePath: path, Error: err}
		}
		o.out.Verbose("%s: %d replacements", path, res.Stats.Total())
		return Result{SourcePath: path, Replacements: res.Stats.Total(), Stats: res.Stats}
	}

	res, err := o.RewritePath(path)
	if err != nil {
		o.out.Error("%v", err)
		return Result{SourcePath: path, Error: err}
	}
	switch {
	case res.Binary:
		o.out.Verbose("%s: skipped binary file", path)
	case res.Changed:
		o.out.Verbose("%s: %d replacements", path, res.Stats.Total())
	default:
		o.out.Verbose("%s: unchanged", path)
	}
	return Result{
		SourcePath:   path,
		Changed:      res.Changed,
		Binary:       res.Binary,
		Replacements: res.Stats.Total(),
		Stats:        res.Stats,
	}
}

// RewritePath rewrites path in place and remembers what it wrote.
// It is safe for concurrent use.
func (o *Orchestrator) RewritePath(path string) (*rewriter.Result, error) {
	res, err := rewriter.RewriteFile(path, o.replacer)
	if err != nil {
		return nil, err
	}
	if res.Changed {
		o.mu.Lock()
		o.written[path] = res.Fingerprint
		o.written[res.Target] = res.Fingerprint
		o.mu.Unlock()
	}
	return res, nil
}

// wroteCurrent reports whether path still holds exactly what this run
// last wrote to it.
func (o *Orchestrator) wroteCurrent(path string) bool {
	o.mu.Lock()
	fp, ok := o.written[path]
	o.mu.Unlock()
	if !ok {
		return false
	}
	current, err := rewriter.Fingerprint(path)
	return err == nil && current == fp
}
