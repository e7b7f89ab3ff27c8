package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/conftree/conftree"
	"github.com/conftree/conftree/olock"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: merge needs <backend> and <client> files", cli.ErrUsage)
	}
	backend, err := readTree(args[0])
	if err != nil {
		return err
	}
	client, err := readTree(args[1])
	if err != nil {
		return err
	}
	res, err := conftree.Merge(backend, client)
	if err != nil {
		conflict := &olock.ConflictError{}
		if errors.As(err, &conflict) {
			fmt.Fprintf(os.Stderr, "%v\n", conflict)
			// re-read: the merge left both trees recombined
			backend, rerr := readTree(args[0])
			if rerr != nil {
				return fmt.Errorf("%w (rereading %s: %v)", err, args[0], rerr)
			}
			client, rerr := readTree(args[1])
			if rerr != nil {
				return fmt.Errorf("%w (rereading %s: %v)", err, args[1], rerr)
			}
			printDiff(cfg.MainConfig, cc, conftree.Diff(backend, client))
		}
		return err
	}
	return writeTree(cc, cfg.MainConfig, res)
}
