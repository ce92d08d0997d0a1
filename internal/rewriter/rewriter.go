// Package rewriter applies a replacer to files on disk.
package rewriter

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"recase/internal/replacer"
)

// sniffLen is how much of a file is inspected for NUL bytes.
const sniffLen = 8000

// Result describes the outcome for a single file.
type Result struct {
	Path string
	// Target is the file actually read and written: Path with symlinks resolved.
	Target  string
	Stats   replacer.Stats
	Changed bool
	// Binary is set when the file was skipped because it looks binary.
	Binary bool
	// Fingerprint is the SHA-256 of the content now on disk. It is only
	// set when the file was rewritten.
	Fingerprint string
}

// RewriteFile replaces matches in path. The new content is written to a
// temporary file next to the original and renamed over it, so readers never
// observe a partial file. Files whose content would not change are left
// untouched. A symlink is resolved first and its target is rewritten, so the
// link itself survives.
func RewriteFile(path string, r *replacer.Replacer) (*Result, error) {
	result := &Result{Path: path}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	result.Target = target

	src, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	br := bufio.NewReaderSize(src, sniffLen)
	if isBinary(br) {
		result.Binary = true
		return result, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".recase-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	in, out := sha256.New(), sha256.New()
	stats, err := r.Replace(io.MultiWriter(tmp, out), io.TeeReader(br, in))
	result.Stats = stats
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	// Matches replaced by identical text leave the content as it was.
	if stats.Total() == 0 || bytes.Equal(in.Sum(nil), out.Sum(nil)) {
		return result, nil
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return nil, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true

	result.Changed = true
	result.Fingerprint = hexSum(out)
	return result, nil
}

// StreamFile writes the replaced content of path to w without modifying it.
func StreamFile(path string, r *replacer.Replacer, w io.Writer) (*Result, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	stats, err := r.Replace(w, src)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", path, err)
	}
	return &Result{Path: path, Stats: stats}, nil
}

// Fingerprint returns the SHA-256 of the file's current content.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hexSum(h), nil
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// isBinary reports whether the buffered prefix contains a NUL byte.
func isBinary(br *bufio.Reader) bool {
	head, _ := br.Peek(sniffLen)
	return bytes.IndexByte(head, 0) >= 0
}
