package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/evdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	from, err := readEvents(cc, args[0])
	if err != nil {
		return err
	}
	to, err := readEvents(cc, args[1])
	if err != nil {
		return err
	}
	lines, err := evdiff.Diff(from, to)
	if err != nil {
		return err
	}
	if !evdiff.Changed(lines) {
		return nil
	}
	if err := evdiff.Format(cc.Out, lines, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
