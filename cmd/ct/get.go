package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: get needs <path> and at most one input file", cli.ErrUsage)
	}
	in := ""
	if len(args) == 2 {
		in = args[1]
	}
	root, err := readTree(in)
	if err != nil {
		return err
	}
	res, err := root.GetPath(args[0])
	if err != nil {
		return err
	}
	return writeTree(cc, cfg.MainConfig, res)
}
