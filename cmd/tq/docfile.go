package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/treeq-dev/treeq/ir"
	"github.com/treeq-dev/treeq/load"
)

func getDocFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return load.Load(d, load.WithFormat(cfg.inFormat(path)))
}
