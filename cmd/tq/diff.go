package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/treeq-dev/treeq"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: diff requires a query and two files", cli.ErrUsage)
	}
	q := args[0]
	plan, err := treeq.Compile(q)
	if err != nil {
		return err
	}
	texts := make([]string, 2)
	for i, file := range args[1:] {
		node, err := getDocFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		res, err := treeq.GetStrict[any](plan, node, treeq.WithEnv(cfg.Env))
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, q, err)
		}
		buf := &bytes.Buffer{}
		if err := renderResult(cfg.MainConfig, buf, res); err != nil {
			return err
		}
		texts[i] = buf.String()
	}
	if texts[0] == texts[1] {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(texts[0], texts[1], false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	_, err = io.WriteString(cc.Out, dmp.DiffPrettyText(diffs))
	return err
}
