package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/evfile"
	"github.com/signadot/docsink/sectionid"
)

func sections(cfg *SectionsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	c := sectionid.NewCollector()
	for _, file := range args {
		evs, err := readEvents(cc, file)
		if err != nil {
			return err
		}
		c.Reset()
		if err := evfile.Play(evs, c); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		for _, id := range c.IDs() {
			if _, err := fmt.Fprintf(cc.Out, "%s\t%q\n", file, id); err != nil {
				return err
			}
		}
	}
	return nil
}
