package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/evfile"
	"github.com/signadot/docsink/filter"
	"github.com/signadot/docsink/render"
	"github.com/signadot/docsink/sink"
)

func filterMain(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Attrs != nil && cfg.Range == "" {
		return fmt.Errorf("%w: -a requires -range", cli.ErrUsage)
	}
	var out sink.Sink
	if cfg.Outline {
		out = render.NewOutline(cc.Out, render.WithColors(cfg.colors(cc.Out)))
	} else {
		out = evfile.NewWriter(cc.Out, cfg.outFormat())
	}
	s, err := cfg.chain(out)
	if err != nil {
		return err
	}
	if err := s.Handle(sink.AttachLogger(cfg.logger())); err != nil {
		return err
	}
	return playFiles(cc, args, s)
}

// chain wraps out so that events pass the allow list, then the range, then
// the expression.
func (cfg *FilterConfig) chain(out sink.Sink) (sink.Sink, error) {
	s := out
	if cfg.Expr != "" {
		f, err := filter.NewExpr(s, cfg.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		s = f
	}
	if cfg.Range != "" {
		k, err := sink.ParseKind(cfg.Range)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		s = filter.NewRange(s, k, cfg.Attrs)
	}
	if cfg.Allow != "" {
		kinds, err := parseKinds(cfg.Allow)
		if err != nil {
			return nil, err
		}
		s = filter.NewAllow(s, kinds...)
	}
	return s, nil
}

func parseKinds(v string) ([]sink.Kind, error) {
	var res []sink.Kind
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := sink.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		res = append(res, k)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: -allow needs at least one kind", cli.ErrUsage)
	}
	return res, nil
}
