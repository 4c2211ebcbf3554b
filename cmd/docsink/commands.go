package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output event document format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "docsink").
		WithSynopsis("docsink [opts] command [opts]").
		WithDescription("docsink filters and inspects document event streams.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docsinkMain(cfg, cc, args)
		}).
		WithSubs(
			FilterCommand(cfg),
			SectionsCommand(cfg),
			RenderCommand(cfg),
			DiffCommand(cfg),
			BookCommand(cfg))
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "a",
			Description: "attribute the -range target must carry",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.attrOpt), "(name=val)"),
		})
	return cli.NewCommandAt(&cfg.Command, "filter").
		WithAliases("f").
		WithSynopsis("filter [-allow k1,k2] [-range kind [-a name=val]...] [-expr src] [files]").
		WithDescription("filter event documents, keeping opens and their matching closes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return filterMain(cfg, cc, args)
		})
}

func SectionsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SectionsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "sections").
		WithAliases("s", "ids").
		WithSynopsis("sections [files]").
		WithDescription("list the section ids each event document defines").
		WithRun(func(cc *cli.Context, args []string) error {
			return sections(cfg, cc, args)
		})
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "render").
		WithAliases("r", "view").
		WithSynopsis("render [-c] [files]").
		WithDescription("render event documents as an indented outline").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return renderMain(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] a b").
		WithDescription("diff the outlines of two event documents, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func BookCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BookConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "m",
			Aliases:     []string{"module"},
			Description: "source module, may be repeated",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.moduleOpt), "(id:srcdir:ext:parser)"),
		})
	return cli.NewCommandAt(&cfg.Command, "book").
		WithAliases("b").
		WithSynopsis("book -d descriptor [-m id:srcdir:ext:parser]... [-s id [-k kind]] [roots]").
		WithDescription("map a book's source files to section ids, or render one section").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bookMain(cfg, cc, args)
		})
}
