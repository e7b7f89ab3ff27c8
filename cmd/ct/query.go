package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/conftree/conftree"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: query needs -e <expr>", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one input file", cli.ErrUsage)
	}
	in := ""
	if len(args) == 1 {
		in = args[0]
	}
	doc, err := readTree(in)
	if err != nil {
		return err
	}
	res, err := conftree.Query(doc, cfg.Expr)
	if err != nil {
		return err
	}
	return writeTree(cc, cfg.MainConfig, res)
}
