// Package source reads dictionary entries from tabular files.
//
// A source is a file with a header row whose columns map onto entry fields:
//
//	word,base,person,amount,imperfective,concrete,gender,mood,meaning,tense
//
// The decoder is chosen by file extension (see DefaultDecoders). A path may also be a
// doublestar pattern such as "dicts/**/*.csv", in which case every match is read in
// lexical order and the entries are concatenated.
package source

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/verbdrill/pkg/grammar"
)

var (
	// ErrNoMatch is returned when a pattern matches no file.
	ErrNoMatch = errors.New("no dictionary file matches")
	// ErrUnsupportedFormat is returned for an extension without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")
)

// OpenError reports a dictionary file that is missing or unreadable.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open dictionary %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ParseError reports a row that does not decode into an entry.
// Row is 1-based and counts the header; zero means the file as a whole.
type ParseError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse dictionary %s", e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader reads entries from files using a decoder per extension.
type Loader struct {
	decoders map[string]Decoder
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDecoder registers a decoder for an extension such as ".tsv".
func WithDecoder(ext string, d Decoder) Option {
	return func(l *Loader) {
		l.decoders[strings.ToLower(ext)] = d
	}
}

// WithLogger sets the logger for the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the default decoders.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{decoders: DefaultDecoders(), logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every file that pattern resolves to. There is no partial result:
// the first failing file aborts the load.
func (l *Loader) Load(pattern string) ([]grammar.Entry, error) {
	paths, err := l.Resolve(pattern)
	if err != nil {
		return nil, err
	}
	var out []grammar.Entry
	for _, p := range paths {
		entries, err := l.ReadFile(p)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("dictionary file loaded", "path", p, "entries", len(entries))
		out = append(out, entries...)
	}
	return out, nil
}

// Resolve expands pattern into the sorted list of files it names.
// A plain path resolves to itself, whether or not it exists.
func (l *Loader) Resolve(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, &OpenError{Path: pattern, Err: doublestar.ErrBadPattern}
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &OpenError{Path: pattern, Err: err}
	}
	var paths []string
	for _, m := range matches {
		if _, ok := l.decoders[strings.ToLower(filepath.Ext(m))]; ok {
			paths = append(paths, m)
		}
	}
	if len(paths) == 0 {
		return nil, &OpenError{Path: pattern, Err: ErrNoMatch}
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadFile decodes one file.
func (l *Loader) ReadFile(path string) ([]grammar.Entry, error) {
	dec, ok := l.decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &OpenError{Path: path, Err: ErrUnsupportedFormat}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := dec.Decode(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	entries, err := fromRows(rows)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return entries, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
