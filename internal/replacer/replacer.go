// Package replacer substitutes many patterns in a byte stream in one pass.
//
// Matching is leftmost-longest: at the earliest position where any pattern
// matches, the longest matching pattern wins, and among patterns of equal
// text the one with the lowest index wins. Matches never overlap; scanning
// resumes right after the matched input. Input is handled as raw bytes, so
// invalid UTF-8 passes through untouched.
package replacer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const readSize = 32 * 1024

var (
	// ErrLengthMismatch is returned when patterns and replacements differ in length.
	ErrLengthMismatch = errors.New("patterns and replacements differ in length")
	// ErrEmptyPattern is returned for an empty search pattern.
	ErrEmptyPattern = errors.New("empty pattern")
)

// Stats describes one replacement pass.
type Stats struct {
	// Matches counts replacements per pattern index.
	Matches      []int
	BytesRead    int64
	BytesWritten int64
}

// Total returns the number of replacements made.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Matches {
		total += n
	}
	return total
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	if len(s.Matches) < len(other.Matches) {
		grown := make([]int, len(other.Matches))
		copy(grown, s.Matches)
		s.Matches = grown
	}
	for i, n := range other.Matches {
		s.Matches[i] += n
	}
	s.BytesRead += other.BytesRead
	s.BytesWritten += other.BytesWritten
}

// Replacer applies a fixed set of pattern/replacement pairs. It holds no
// mutable state and may be shared between goroutines.
type Replacer struct {
	ac           *automaton
	replacements [][]byte
}

// New builds a Replacer. patterns[i] is replaced by replacements[i].
func New(patterns, replacements []string) (*Replacer, error) {
	if len(patterns) != len(replacements) {
		return nil, fmt.Errorf("%w: %d patterns, %d replacements", ErrLengthMismatch, len(patterns), len(replacements))
	}

	pats := make([][]byte, len(patterns))
	repls := make([][]byte, len(replacements))
	for i, p := range patterns {
		if p == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyPattern, i)
		}
		pats[i] = []byte(p)
		repls[i] = []byte(replacements[i])
	}

	return &Replacer{
		ac:           newAutomaton(pats),
		replacements: repls,
	}, nil
}

// Replace copies src to dst, substituting every match. Output is written
// as soon as no pending match can still claim it.
func (r *Replacer) Replace(dst io.Writer, src io.Reader) (Stats, error) {
	s := &stream{
		r:     r,
		w:     bufio.NewWriter(dst),
		stats: Stats{Matches: make([]int, len(r.replacements))},
	}

	chunk := make([]byte, readSize)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			s.stats.BytesRead += int64(n)
			s.buf = append(s.buf, chunk[:n]...)
			if werr := s.drain(false); werr != nil {
				return s.stats, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.stats, fmt.Errorf("reading input: %w", err)
		}
	}

	if err := s.drain(true); err != nil {
		return s.stats, err
	}
	if err := s.w.Flush(); err != nil {
		return s.stats, fmt.Errorf("writing output: %w", err)
	}
	return s.stats, nil
}

// ReplaceString is Replace over an in-memory string.
func (r *Replacer) ReplaceString(in string) (string, Stats) {
	var b strings.Builder
	// Neither side can fail for in-memory readers and writers.
	stats, _ := r.Replace(&b, strings.NewReader(in))
	return b.String(), stats
}

type match struct {
	start, end int64
	index      int32
}

// stream is the per-call scanning state. buf holds input not yet written;
// buf[0] sits at absolute input offset base and buf[:fed] has been fed to
// the automaton.
type stream struct {
	r     *Replacer
	w     *bufio.Writer
	stats Stats

	buf   []byte
	base  int64
	fed   int
	state int32

	cand    match
	hasCand bool
}

func (s *stream) step(b byte) {
	ac := s.r.ac
	s.state = ac.delta[s.state][b]
	s.fed++

	node := ac.longest(s.state)
	if node < 0 {
		return
	}
	end := s.base + int64(s.fed)
	start := end - int64(ac.depth[node])
	if !s.hasCand || start < s.cand.start || (start == s.cand.start && end > s.cand.end) {
		s.cand = match{start: start, end: end, index: ac.out[node]}
		s.hasCand = true
	}
}

// liveStart is the earliest offset at which a match could still begin.
func (s *stream) liveStart() int64 {
	return s.base + int64(s.fed) - int64(s.r.ac.depth[s.state])
}

// settled reports whether the candidate can no longer be beaten by a match
// that starts earlier or at the same offset but runs longer.
func (s *stream) settled() bool {
	return s.hasCand && s.liveStart() > s.cand.start
}

func (s *stream) drain(eof bool) error {
	for {
		for s.fed < len(s.buf) && !s.settled() {
			s.step(s.buf[s.fed])
		}
		if s.settled() || (eof && s.hasCand) {
			if err := s.commit(); err != nil {
				return err
			}
			continue
		}

		n := len(s.buf)
		if !eof {
			n = int(s.liveStart() - s.base)
		}
		return s.discard(n)
	}
}

// commit writes everything before the candidate, then its replacement, and
// restarts the automaton right after the matched input.
func (s *stream) commit() error {
	if err := s.write(s.buf[:s.cand.start-s.base]); err != nil {
		return err
	}
	if err := s.write(s.r.replacements[s.cand.index]); err != nil {
		return err
	}
	s.stats.Matches[s.cand.index]++

	cut := int(s.cand.end - s.base)
	s.buf = s.buf[:copy(s.buf, s.buf[cut:])]
	s.base = s.cand.end
	s.fed = 0
	s.state = 0
	s.hasCand = false
	return nil
}

// discard writes the first n pending bytes unchanged.
func (s *stream) discard(n int) error {
	if n <= 0 {
		return nil
	}
	if err := s.write(s.buf[:n]); err != nil {
		return err
	}
	s.buf = s.buf[:copy(s.buf, s.buf[n:])]
	s.base += int64(n)
	s.fed -= n
	return nil
}

func (s *stream) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := s.w.Write(p)
	s.stats.BytesWritten += int64(n)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
