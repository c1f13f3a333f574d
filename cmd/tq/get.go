package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/treeq-dev/treeq"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a query", cli.ErrUsage)
	}
	q := args[0]
	plan, err := treeq.Compile(q)
	if err != nil {
		return err
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		node, err := getDocFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res, err := treeq.GetStrict[any](plan, node, treeq.WithEnv(cfg.Env))
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, q, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := renderResult(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
