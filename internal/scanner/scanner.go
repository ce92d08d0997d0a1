// Package scanner resolves path operands into the files recase rewrites.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// PathNotFound indicates the path does not exist.
	PathNotFound ScanErrorType = "PATH_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the path.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
	// SymlinkError indicates a symlink was encountered with "error" policy.
	SymlinkError ScanErrorType = "SYMLINK_ERROR"
	// NotRegular indicates a path that is neither a file nor a directory.
	NotRegular ScanErrorType = "NOT_REGULAR"
	// SymlinkSkipped indicates a symlink operand ignored under the "skip" policy.
	SymlinkSkipped ScanErrorType = "SYMLINK_SKIPPED"
)

// Symlink policy constants
const (
	SymlinkPolicyFollow = "follow"
	SymlinkPolicySkip   = "skip"
	SymlinkPolicyError  = "error"
)

// ScanError represents an error that occurred while resolving a path.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	MaxDepth      int    // Maximum depth to scan (0 = immediate only, -1 = unlimited)
	SymlinkPolicy string // "follow", "skip", or "error"
	// IncludeHidden also returns dot files and descends into dot directories.
	IncludeHidden bool
}

// DefaultScanOptions returns the default scan options.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxDepth:      0,
		SymlinkPolicy: SymlinkPolicySkip,
	}
}

// FileEntry represents a file found during scanning.
type FileEntry struct {
	Name     string // Filename only
	FullPath string // Absolute path
}

// Resolve expands path operands into a sorted, de-duplicated file list.
// Files named directly are always included, even when hidden; directories
// are scanned with opts. Paths that cannot be resolved are reported in errs
// and do not stop the others. Symlink operands dropped by the skip policy
// are reported as SymlinkSkipped errors; see IsSkipped.
func Resolve(paths []string, opts ScanOptions) (files []FileEntry, errs []error) {
	seen := make(map[string]bool)
	add := func(entries ...FileEntry) {
		for _, e := range entries {
			key := e.FullPath
			if opts.SymlinkPolicy == SymlinkPolicyFollow {
				// a link and its target are the same file
				if resolved, err := filepath.EvalSymlinks(key); err == nil {
					key = resolved
				}
			}
			if !seen[key] {
				seen[key] = true
				files = append(files, e)
			}
		}
	}

	for _, p := range paths {
		info, err := stat(p, opts.SymlinkPolicy)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info == nil {
			errs = append(errs, &ScanError{
				Type: SymlinkSkipped,
				Path: p,
				Err:  errors.New("symlink skipped, use -symlinks=follow to process it"),
			})
			continue
		}

		switch {
		case info.IsDir():
			entries, err := scanDirectory(p, opts, 0)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			add(entries...)
		case info.Mode().IsRegular():
			add(newEntry(p))
		default:
			errs = append(errs, &ScanError{Type: NotRegular, Path: p, Err: errors.New("not a regular file")})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].FullPath < files[j].FullPath })
	return files, errs
}

// IsSkipped reports whether err only records a symlink operand that was
// skipped by policy rather than a failure.
func IsSkipped(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr) && scanErr.Type == SymlinkSkipped
}

// stat applies the symlink policy to path. A nil FileInfo with a nil error
// means the path is a symlink that should be skipped.
func stat(path string, policy string) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return info, nil
	}

	switch policy {
	case SymlinkPolicyError:
		return nil, &ScanError{
			Type: SymlinkError,
			Path: path,
			Err:  errors.New("symlink encountered with error policy"),
		}
	case SymlinkPolicyFollow:
		info, err = os.Stat(path)
		if err != nil {
			return nil, classify(path, err)
		}
		return info, nil
	default:
		return nil, nil
	}
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &ScanError{Type: PathNotFound, Path: path, Err: err}
	case os.IsPermission(err):
		return &ScanError{Type: PermissionDenied, Path: path, Err: err}
	default:
		return err
	}
}

// IsHidden reports whether a base name is a dot file or dot directory.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func newEntry(path string) FileEntry {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return FileEntry{Name: filepath.Base(path), FullPath: absPath}
}

// scanDirectory recursively scans a directory up to the specified depth.
func scanDirectory(directory string, opts ScanOptions, currentDepth int) ([]FileEntry, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, classify(directory, err)
	}

	var files []FileEntry
	for _, entry := range entries {
		if !opts.IncludeHidden && IsHidden(entry.Name()) {
			continue
		}
		fullPath := filepath.Join(directory, entry.Name())

		info, err := stat(fullPath, opts.SymlinkPolicy)
		if err != nil {
			var scanErr *ScanError
			if errors.As(err, &scanErr) && scanErr.Type == SymlinkError {
				return nil, err
			}
			continue // Skip entries we can't stat
		}
		if info == nil {
			continue
		}

		if info.IsDir() {
			// MaxDepth of -1 means unlimited, 0 means immediate only
			if opts.MaxDepth == -1 || currentDepth < opts.MaxDepth {
				subFiles, err := scanDirectory(fullPath, opts, currentDepth+1)
				if err != nil {
					return nil, err
				}
				files = append(files, subFiles...)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, newEntry(fullPath))
	}

	return files, nil
}
