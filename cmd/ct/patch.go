package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/conftree/conftree"
	"github.com/conftree/conftree/ir"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch needs -p <patchfile>", cli.ErrUsage)
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
	p, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return err
	}
	var res *ir.Node
	if cfg.Merge {
		res, err = conftree.MergePatch(doc, p)
	} else {
		res, err = conftree.Patch(doc, p)
	}
	if err != nil {
		return err
	}
	return writeTree(cc, cfg.MainConfig, res)
}
