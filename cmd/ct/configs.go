package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/conftree/conftree/encode"
	"github.com/conftree/conftree/format"
	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/parse"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Color bool `cli:"name=color desc='force colored output'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
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

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	fmat := format.YAMLFormat
	if cfg.J {
		fmat = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return []encode.EncodeOption{encode.EncodeFormat(fmat)}
}

func (cfg *MainConfig) colorEnabled() bool {
	if cfg.Color {
		return true
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readTree parses the file at p, or stdin when p is "-" or empty.
func readTree(p string) (*ir.Node, error) {
	var (
		d   []byte
		err error
	)
	if p == "" || p == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(p)
	}
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}

func writeTree(cc *cli.Context, cfg *MainConfig, node *ir.Node) error {
	return encode.Encode(node, cc.Out, cfg.encOpts()...)
}
