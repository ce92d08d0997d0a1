// Package main provides the CLI entry point for recase.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recase/internal/config"
	"recase/internal/orchestrator"
	"recase/internal/output"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// watchContext bounds watch mode. It ends on SIGINT or SIGTERM.
var watchContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type cliFlags struct {
	opts           *config.Options
	ignore         stringList
	followSymlinks bool
	version        bool
}

func setupFlags(stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet("recase", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &cliFlags{opts: config.Default()}
	o := flags.opts

	fs.BoolVar(&o.InPlace, "w", false, "rewrite files in place instead of printing them")
	fs.BoolVar(&o.Recursive, "r", false, "descend into directory operands")
	fs.IntVar(&o.MaxDepth, "depth", o.MaxDepth, "maximum directory depth with -r (-1 = unlimited)")
	fs.StringVar(&o.SymlinkPolicy, "symlinks", o.SymlinkPolicy, "symbolic link handling: skip, follow or error")
	fs.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "shorthand for -symlinks=follow")
	fs.BoolVar(&o.IncludeHidden, "hidden", false, "also process dot files and dot directories")
	fs.BoolVar(&o.Watch, "watch", false, "keep running and rewrite files as they change (requires -w)")
	fs.DurationVar(&o.Debounce, "debounce", o.Debounce, "quiet period before a changed file is rewritten")
	fs.Var(&flags.ignore, "ignore", "glob of file names to ignore in watch mode (repeatable)")
	fs.BoolVar(&o.PrintTable, "print-table", false, "print the pattern table and exit")
	fs.StringVar(&o.Format, "format", o.Format, "summary and table format: text, json or yaml")
	fs.BoolVar(&o.Verbose, "v", false, "verbose output")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		out := fs.Output()
		_, _ = fmt.Fprintf(out, "Usage: recase [flags] SEARCH REPLACEMENT [PATH...]\n\n")
		_, _ = fmt.Fprintf(out, "Replace SEARCH in every case convention with REPLACEMENT in the matching one.\n")
		_, _ = fmt.Fprintf(out, "Without paths, reads standard input and writes standard output.\n\n")
		_, _ = fmt.Fprintf(out, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(out, "\nExamples:\n")
		_, _ = fmt.Fprintf(out, "  recase fooBar bazQux < in.go > out.go\n")
		_, _ = fmt.Fprintf(out, "  recase -w -r user_id account_id ./internal\n")
		_, _ = fmt.Fprintf(out, "  recase -w -r -hidden -symlinks=follow old_name newName .\n")
		_, _ = fmt.Fprintf(out, "  recase -print-table -format yaml HTTPServer web_server\n")
	}

	return fs, flags
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, flags := setupFlags(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if flags.version {
		_, _ = fmt.Fprintf(stdout, "recase %s\n", version)
		return 0
	}

	opts := flags.opts
	opts.IgnorePatterns = flags.ignore
	if flags.followSymlinks {
		opts.SymlinkPolicy = config.SymlinkPolicyFollow
	}
	rest := fs.Args()
	if len(rest) > 0 {
		opts.Search = rest[0]
	}
	if len(rest) > 1 {
		opts.Replacement = rest[1]
	}
	if len(rest) > 2 {
		opts.Paths = rest[2:]
	}

	cfg := output.Config{Verbose: opts.Verbose, Writer: stderr, ErrWriter: stderr}
	if f, ok := stderr.(*os.File); ok && f == os.Stderr {
		cfg.IsTTY = output.DefaultConfig().IsTTY
	}
	out := output.New(cfg)

	o, err := orchestrator.New(opts, out, stdin, stdout)
	if err != nil {
		out.Error("%v", err)
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == config.MissingArgument {
			fs.Usage()
		}
		return 1
	}

	if opts.PrintTable {
		if err := orchestrator.WriteTable(stdout, o.Table(), opts.Format); err != nil {
			out.Error("%v", err)
			return 1
		}
		return 0
	}

	summary, err := o.Run()
	if err != nil {
		out.Error("%v", err)
		return 1
	}
	for _, scanErr := range summary.ScanErrors {
		out.Error("%v", scanErr)
	}
	if len(opts.Paths) > 0 && (opts.Verbose || opts.Format != config.FormatText) {
		if err := orchestrator.WriteSummary(stderr, summary, opts.Format); err != nil {
			out.Error("%v", err)
		}
	}

	if opts.Watch {
		ctx, stop := watchContext()
		defer stop()
		ws, err := o.Watch(ctx)
		if err != nil {
			out.Error("%v", err)
			return 1
		}
		out.Info("Watch stopped after %s: %d rewritten, %d unchanged, %d ignored, %d errors",
			ws.Duration.Round(time.Millisecond), ws.FilesChanged, ws.FilesUnchanged, ws.FilesIgnored, ws.Errors)
		if summary.HasErrors() || ws.Errors > 0 {
			return 1
		}
		return 0
	}

	if summary.HasErrors() {
		return 1
	}
	return 0
}
