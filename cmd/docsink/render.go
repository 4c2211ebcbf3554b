package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/render"
)

func renderMain(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []render.OutlineOption{
		render.WithColors(cfg.colors(cc.Out)),
		render.WithControls(cfg.Controls),
	}
	if cfg.Indent != "" {
		opts = append(opts, render.WithIndent(cfg.Indent))
	}
	return playFiles(cc, args, render.NewOutline(cc.Out, opts...))
}
