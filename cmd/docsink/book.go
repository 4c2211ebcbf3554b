package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/book"
	"github.com/signadot/docsink/evfile"
	"github.com/signadot/docsink/render"
	"github.com/signadot/docsink/sink"
)

func bookMain(cfg *BookConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Descriptor == "" {
		return fmt.Errorf("%w: book requires -d", cli.ErrUsage)
	}
	if cfg.Kind != "" && cfg.Section == "" {
		return fmt.Errorf("%w: -k requires -s", cli.ErrUsage)
	}
	b, err := book.ReadDescriptor(cfg.Descriptor)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	modules := cfg.modules()
	var files []string
	for _, root := range args {
		fs, err := book.Discover(root, modules)
		if err != nil {
			return fmt.Errorf("error walking %s: %w", root, err)
		}
		files = append(files, fs...)
	}
	loader := &book.Loader{
		Modules: modules,
		Parsers: map[string]book.Parser{"events": evfile.Parser{}},
		Log:     cfg.logger(),
	}
	bookCtx := book.NewContext()
	if err := loader.LoadFiles(bookCtx, files); err != nil {
		return err
	}
	if cfg.Section != "" {
		kind := sink.Section1
		if cfg.Kind != "" {
			kind, err = sink.ParseKind(cfg.Kind)
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
		}
		o := render.NewOutline(cc.Out, render.WithColors(cfg.colors(cc.Out)))
		if err := loader.Extract(bookCtx, cfg.Section, kind, o); err != nil {
			return err
		}
		return o.Flush()
	}
	return writeBook(cc.Out, b, bookCtx)
}

// writeBook lists the chapters of b with the file each section comes
// from, then every section id known to bookCtx.
func writeBook(w io.Writer, b *book.Book, bookCtx *book.Context) error {
	fmt.Fprintf(w, "book %s", b.ID)
	if b.Title != "" {
		fmt.Fprintf(w, " %q", b.Title)
	}
	fmt.Fprintln(w)
	missing := 0
	for _, p := range b.Parts {
		fmt.Fprintf(w, "  part %s\n", p.ID)
		for _, c := range p.Chapters {
			fmt.Fprintf(w, "    chapter %s\n", c.ID)
			for _, s := range c.Sections {
				_, f, ok := bookCtx.Lookup(s.ID)
				if !ok {
					missing++
					fmt.Fprintf(w, "      section %s: missing\n", s.ID)
					continue
				}
				fmt.Fprintf(w, "      section %s: %s\n", s.ID, f.Path)
			}
		}
	}
	for _, key := range slices.Sorted(maps.Keys(bookCtx.Files)) {
		f := bookCtx.Files[key]
		for _, id := range f.SectionIDs {
			if _, err := fmt.Fprintf(w, "%s=%s parser=%s\n", id, f.Path, f.ParserID); err != nil {
				return err
			}
		}
	}
	if missing != 0 {
		return fmt.Errorf("%d sections not found", missing)
	}
	return nil
}
