package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/docsink/evfile"
	"github.com/signadot/docsink/sink"
)

func docsinkMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readEvents decodes file, or stdin when file is "-".
func readEvents(cc *cli.Context, file string) ([]sink.Event, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	evs, err := evfile.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return evs, nil
}

// playFiles plays each input in turn into s, then shuts s down.
func playFiles(cc *cli.Context, files []string, s sink.Sink) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		evs, err := readEvents(cc, file)
		if err != nil {
			return err
		}
		if err := evfile.Play(evs, s); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return s.Handle(sink.Shutdown())
}
