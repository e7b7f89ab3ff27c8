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
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ct").
		WithSynopsis("ct [opts] command [opts]").
		WithDescription("ct is a tool for working with optimistically locked configuration trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ctMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			DiffCommand(cfg),
			StampCommand(cfg),
			RebaseCommand(cfg),
			StripCommand(cfg),
			PatchCommand(cfg),
			GetCommand(cfg),
			QueryCommand(cfg))
}

type MergeConfig struct {
	*MainConfig
	Merge *cli.Command
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("merge").
		WithAliases("m").
		WithSynopsis("merge <backend> <client>").
		WithDescription("merge a client configuration update into the backend's current tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
	cfg.Merge = cmd
	return cmd
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff <from> <to>").
		WithDescription("show a line diff between two configuration files").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

type HashConfig struct {
	*MainConfig
	Marks []string
	Cmd   *cli.Command
}

func StampCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("stamp").
		WithSynopsis("stamp [-mark path]... [file]").
		WithDescription("recompute content hashes on lock-protected nodes").
		WithOpts(&cli.Opt{
			Name:        "mark",
			Description: "mark the node at this path ($.a.b[0]) lock-protected first",
			Type:        cli.NamedFuncOpt(cfg.markOpt, "(path)"),
		}).
		WithRun(func(cc *cli.Context, args []string) error {
			return stamp(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func (cfg *HashConfig) markOpt(cc *cli.Context, a string) (any, error) {
	cfg.Marks = append(cfg.Marks, a)
	return nil, nil
}

func RebaseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("rebase").
		WithSynopsis("rebase [file]").
		WithDescription("record current hashes as the edit baseline").
		WithRun(func(cc *cli.Context, args []string) error {
			return rebase(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func StripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("strip").
		WithSynopsis("strip [file]").
		WithDescription("remove lock hash attributes from a tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return strip(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

type PatchConfig struct {
	*MainConfig
	PatchFile string `cli:"name=p desc='patch file (RFC 6902 JSON patch)'"`
	Merge     bool   `cli:"name=merge desc='treat the patch as an RFC 7386 merge patch'"`
	Patch     *cli.Command
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch -p <patchfile> [-merge] [file]").
		WithDescription("apply a JSON patch to a configuration file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> [file]").
		WithDescription("get the element at a path ($.a.b[0]) from a file").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

type QueryConfig struct {
	*MainConfig
	Expr  string `cli:"name=e desc='expression to evaluate'"`
	Query *cli.Command
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query -e <expr> [file]").
		WithDescription("evaluate an expression against a configuration file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
	cfg.Query = cmd
	return cmd
}
