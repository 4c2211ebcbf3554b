package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signadot/docsink/debug"
	"github.com/signadot/docsink/filter"
	"github.com/signadot/docsink/sectionid"
	"github.com/signadot/docsink/sink"
)

var ErrNoParser = errors.New("no parser")

// Parser drives a sink from a source document.
type Parser interface {
	Parse(r io.Reader, s sink.Sink) error
}

// Module describes one source format: the directory its files live under,
// their extension (without the dot) and the parser that reads them.
type Module struct {
	ID        string
	SourceDir string
	Extension string
	ParserID  string
}

// File is a source file known to a book.
type File struct {
	Path       string
	ParserID   string
	SectionIDs []string
}

// Context holds the files of a book keyed by name without extension, which
// is also the implicit id of the file.
type Context struct {
	Files map[string]*File
}

func NewContext() *Context {
	return &Context{Files: map[string]*File{}}
}

// Loader maps source files to ids and records the section ids each defines.
type Loader struct {
	Modules []Module
	Parsers map[string]Parser
	Log     *slog.Logger
}

// LoadFiles parses each of files that one of l's modules can read and
// records it in bookCtx.
//
// A file whose path contains /SourceDir/ always takes its key. A file that
// only matches by extension is added when the key is not taken yet.
func (l *Loader) LoadFiles(bookCtx *Context, files []string) error {
	log := l.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, m := range l.Modules {
		sourceDir := string(filepath.Separator) + m.SourceDir + string(filepath.Separator)
		parser := l.Parsers[m.ParserID]
		if parser == nil {
			return fmt.Errorf("%w: %q for module %q", ErrNoParser, m.ParserID, m.ID)
		}
		for _, file := range filesForModule(m, files) {
			name := filepath.Base(file)
			path, err := filepath.Abs(file)
			if err != nil {
				return err
			}
			ids, err := sectionIDs(parser, file)
			if err != nil {
				log.Error("error parsing file", "file", file, "parser", m.ParserID, "error", err)
				return fmt.Errorf("error parsing file %s with parser %s: %w", file, m.ParserID, err)
			}
			bf := &File{Path: file, ParserID: m.ParserID, SectionIDs: ids}
			key := strings.TrimSuffix(name, "."+m.Extension)
			if strings.Contains(path, sourceDir) {
				bookCtx.Files[key] = bf
			} else if _, ok := bookCtx.Files[key]; !ok {
				bookCtx.Files[key] = bf
			}
		}
	}
	if debug.Book() {
		debug.Logf("document <-> id mapping:\n")
	}
	for _, key := range slices.Sorted(maps.Keys(bookCtx.Files)) {
		f := bookCtx.Files[key]
		for _, id := range f.SectionIDs {
			if debug.Book() {
				debug.Logf(" %s=%s, parser: %s\n", id, f.Path, f.ParserID)
			}
			log.Log(context.Background(), slog.LevelDebug, "section", "id", id, "file", f.Path, "parser", f.ParserID)
		}
	}
	return nil
}

func sectionIDs(p Parser, file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c := sectionid.NewCollector()
	if err := p.Parse(f, c); err != nil {
		return nil, err
	}
	return c.IDs(), nil
}

// filesForModule selects the candidates whose directory contains the
// module's source dir and whose name ends with "." and its extension.
func filesForModule(m Module, candidates []string) []string {
	var res []string
	for _, c := range candidates {
		if !strings.Contains(filepath.Dir(c), m.SourceDir) {
			continue
		}
		if !strings.HasSuffix(filepath.Base(c), "."+m.Extension) {
			continue
		}
		res = append(res, c)
	}
	return res
}

// Discover lists the files under root that any of modules could read, in
// lexical order.
func Discover(root string, modules []Module) ([]string, error) {
	var res []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, m := range modules {
			if strings.HasSuffix(d.Name(), "."+m.Extension) {
				res = append(res, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Lookup finds the file defining section id, searching files in key order.
func (c *Context) Lookup(id string) (string, *File, bool) {
	for _, key := range slices.Sorted(maps.Keys(c.Files)) {
		f := c.Files[key]
		if key == id || slices.Contains(f.SectionIDs, id) {
			return key, f, true
		}
	}
	return "", nil, false
}

// Extract parses the file defining section id and forwards only that
// section, opened as kind, to s.
func (l *Loader) Extract(bookCtx *Context, id string, kind sink.Kind, s sink.Sink) error {
	_, f, ok := bookCtx.Lookup(id)
	if !ok {
		return fmt.Errorf("no file defines section %q", id)
	}
	parser := l.Parsers[f.ParserID]
	if parser == nil {
		return fmt.Errorf("%w: %q", ErrNoParser, f.ParserID)
	}
	r, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	defer r.Close()
	return parser.Parse(r, filter.NewRange(s, kind, sink.Attrs{sink.AttrID: id}))
}
