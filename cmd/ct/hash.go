package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/olock"
)

func stamp(cfg *HashConfig, cc *cli.Context, args []string) error {
	return hashRun(cfg, cc, args, func(root *ir.Node) error {
		for _, p := range cfg.Marks {
			n, err := root.GetPath(p)
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
			if n.Type != ir.ObjectType {
				return fmt.Errorf("%w: cannot mark %s node at %s", cli.ErrUsage, n.Type, p)
			}
			olock.Mark(n)
		}
		olock.Stamp(root)
		return nil
	})
}

func rebase(cfg *HashConfig, cc *cli.Context, args []string) error {
	return hashRun(cfg, cc, args, func(root *ir.Node) error {
		olock.Rebase(root)
		return nil
	})
}

func strip(cfg *HashConfig, cc *cli.Context, args []string) error {
	return hashRun(cfg, cc, args, func(root *ir.Node) error {
		olock.Strip(root)
		return nil
	})
}

func hashRun(cfg *HashConfig, cc *cli.Context, args []string, f func(*ir.Node) error) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one input file", cli.ErrUsage)
	}
	in := ""
	if len(args) == 1 {
		in = args[0]
	}
	root, err := readTree(in)
	if err != nil {
		return err
	}
	if err := f(root); err != nil {
		return err
	}
	return writeTree(cc, cfg.MainConfig, root)
}
