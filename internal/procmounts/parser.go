package procmounts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kriansa/mountline/internal/log"
	"github.com/kriansa/mountline/internal/mounttab"
)

const (
	// ProcMountsPath is the kernel's table of active mounts
	ProcMountsPath = "/proc/mounts"
	// FstabPath is the static filesystem table
	FstabPath = "/etc/fstab"
)

// Option configures a Reader
type Option func(*Reader)

// WithParser sets the line parser, e.g. to accept non-zero dump/pass fields
func WithParser(p mounttab.Parser) Option {
	return func(r *Reader) {
		r.parser = p
	}
}

// WithSkipInvalid makes the Reader skip lines that fail to parse instead of
// returning an error. report is called for every skipped line and may be nil.
func WithSkipInvalid(report func(*LineError)) Option {
	return func(r *Reader) {
		r.skipInvalid = true
		r.report = report
	}
}

// Reader reads mount entries from a line oriented stream
type Reader struct {
	scanner     *bufio.Scanner
	parser      mounttab.Parser
	line        int
	skipInvalid bool
	report      func(*LineError)
}

// NewReader creates a Reader over r
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{scanner: bufio.NewScanner(r)}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Next returns the next entry. Blank lines and comments are skipped.
// It returns io.EOF when the input is exhausted and a *LineError for a line
// that does not parse.
func (r *Reader) Next() (mounttab.Mount, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()

		line := strings.TrimLeft(text, " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			log.Debug("skipping line", "line", r.line)
			continue
		}

		m, err := r.parser.Parse(line)
		if err == nil {
			return m, nil
		}

		lerr := &LineError{Line: r.line, Text: text, Err: shift(err, len(text)-len(line))}
		if !r.skipInvalid {
			return mounttab.Mount{}, lerr
		}

		log.Warn("skipping invalid mount entry", "line", r.line, "error", lerr.Err)
		if r.report != nil {
			r.report(lerr)
		}
	}

	if err := r.scanner.Err(); err != nil {
		return mounttab.Mount{}, fmt.Errorf("read mount table: %w", err)
	}
	return mounttab.Mount{}, io.EOF
}

// shift moves a parse error's offset past the indentation trimmed off the line
func shift(err error, by int) error {
	var perr *mounttab.ParseError
	if by == 0 || !errors.As(err, &perr) {
		return err
	}
	shifted := *perr
	shifted.Offset += by
	return &shifted
}

// ReadAll reads every entry from r
func ReadAll(r io.Reader, opts ...Option) (Table, error) {
	rd := NewReader(r, opts...)

	var mounts Table
	for {
		m, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return mounts, nil
		}
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, m)
	}
}

// ParseFile reads the mount table at path
func ParseFile(path string, opts ...Option) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	mounts, err := ReadAll(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mounts, nil
}

// Parse parses /proc/mounts and returns all mount entries
func Parse(opts ...Option) (Table, error) {
	return ParseFile(ProcMountsPath, opts...)
}

// ParseFstab parses /etc/fstab. Most fstab files carry non-zero pass
// fields, so callers usually pass WithParser with CountersDigits.
func ParseFstab(opts ...Option) (Table, error) {
	return ParseFile(FstabPath, opts...)
}
