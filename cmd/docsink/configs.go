package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/book"
	"github.com/signadot/docsink/evfile"
	"github.com/signadot/docsink/render"
	"github.com/signadot/docsink/sink"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='render with color'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log to stderr'"`

	OutFormat *evfile.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **evfile.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := evfile.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() evfile.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return evfile.FormatOf(cfg.Out)
	}
	return evfile.YAMLFormat
}

// colors returns the colours to render to w with, or nil.  -color forces
// colours on or off; otherwise they are used when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *render.Colors {
	if cfg.Color {
		return render.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return render.NewColors()
	}
	return nil
}

type FilterConfig struct {
	*cli.Command
	*MainConfig

	Allow   string `cli:"name=allow desc='comma separated kinds to keep'"`
	Range   string `cli:"name=range desc='keep the first span opened with this kind'"`
	Expr    string `cli:"name=expr desc='keep opens for which this expression is true'"`
	Outline bool   `cli:"name=outline desc='write an outline instead of an event document'"`

	Attrs sink.Attrs
}

func (cfg *FilterConfig) attrOpt(_ *cli.Context, a string) (any, error) {
	name, val, ok := strings.Cut(a, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: expected name=val, got %q", cli.ErrUsage, a)
	}
	if cfg.Attrs == nil {
		cfg.Attrs = sink.Attrs{}
	}
	cfg.Attrs[name] = val
	return 0, nil
}

type SectionsConfig struct {
	*cli.Command
	*MainConfig
}

type RenderConfig struct {
	*cli.Command
	*MainConfig

	Controls bool   `cli:"name=c aliases=controls desc='include flush and shutdown'"`
	Indent   string `cli:"name=indent desc='indentation unit'"`
}

type DiffConfig struct {
	*cli.Command
	*MainConfig

	Reverse bool `cli:"name=r desc='reverse the diff'"`
}

type BookConfig struct {
	*cli.Command
	*MainConfig

	Descriptor string `cli:"name=d aliases=descriptor desc='book descriptor file or directory'"`
	Section    string `cli:"name=s aliases=section desc='render the section with this id'"`
	Kind       string `cli:"name=k aliases=kind desc='kind the section is opened with'"`

	Modules []book.Module
}

// moduleOpt parses id:srcdir:ext:parser.
func (cfg *BookConfig) moduleOpt(_ *cli.Context, a string) (any, error) {
	parts := strings.Split(a, ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected id:srcdir:ext:parser, got %q", cli.ErrUsage, a)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty field in module %q", cli.ErrUsage, a)
		}
	}
	m := book.Module{
		ID:        parts[0],
		SourceDir: parts[1],
		Extension: strings.TrimPrefix(parts[2], "."),
		ParserID:  parts[3],
	}
	cfg.Modules = append(cfg.Modules, m)
	return m, nil
}

func (cfg *BookConfig) modules() []book.Module {
	if len(cfg.Modules) != 0 {
		return cfg.Modules
	}
	return []book.Module{
		{ID: "events", SourceDir: "events", Extension: "evy", ParserID: "events"},
		{ID: "events-json", SourceDir: "events", Extension: "evj", ParserID: "events"},
	}
}
