package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/ohler55/ojg/oj"
	"github.com/scott-cotton/cli"

	"github.com/treeq-dev/treeq/ir"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: patch requires a query and a merge patch", cli.ErrUsage)
	}
	q, patchArg := args[0], args[1]
	file := "-"
	if len(args) > 2 {
		file = args[2]
	}
	patchJSON := []byte(patchArg)
	if cfg.File {
		patchJSON, err = os.ReadFile(patchArg)
		if err != nil {
			return err
		}
	}
	target, doc, err := resolveMut(cfg.MainConfig, cc, q, file)
	if err != nil {
		return err
	}
	orig, err := ir.ToAny(target)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch([]byte(oj.JSON(orig)), patchJSON)
	if err != nil {
		return fmt.Errorf("merge patch failed: %w", err)
	}
	v, err := oj.Parse(merged)
	if err != nil {
		return err
	}
	repl, err := ir.FromAny(v)
	if err != nil {
		return err
	}
	target.Replace(repl)
	return render(cfg.MainConfig, cc.Out, doc)
}
