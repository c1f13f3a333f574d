package main

import (
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		node, err := getDocFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := renderPretty(cfg.MainConfig, cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}
