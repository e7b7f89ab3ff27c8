package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/conftree/conftree"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs <from> and <to> files", cli.ErrUsage)
	}
	from, err := readTree(args[0])
	if err != nil {
		return err
	}
	to, err := readTree(args[1])
	if err != nil {
		return err
	}
	printDiff(cfg.MainConfig, cc, conftree.Diff(from, to))
	return nil
}

func printDiff(cfg *MainConfig, cc *cli.Context, diffs []diffpatch.Diff) {
	if !cfg.colorEnabled() {
		fmt.Fprint(cc.Out, conftree.DiffText(diffs))
		return
	}
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			del.Fprint(cc.Out, prefixLines("-", d.Text))
		case diffpatch.DiffInsert:
			ins.Fprint(cc.Out, prefixLines("+", d.Text))
		default:
			fmt.Fprint(cc.Out, prefixLines(" ", d.Text))
		}
	}
}

func prefixLines(prefix, text string) string {
	res := ""
	for _, line := range splitTextLines(text) {
		res += prefix + line + "\n"
	}
	return res
}

func splitTextLines(text string) []string {
	var (
		lines []string
		start = 0
	)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
