package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/treeq-dev/treeq"
	"github.com/treeq-dev/treeq/ir"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a query and a value", cli.ErrUsage)
	}
	q, val := args[0], args[1]
	file := "-"
	if len(args) > 2 {
		file = args[2]
	}
	target, doc, err := resolveMut(cfg.MainConfig, cc, q, file)
	if err != nil {
		return err
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return fmt.Errorf("invalid value %q: %w", val, err)
	}
	repl, err := ir.FromAny(v)
	if err != nil {
		return err
	}
	target.Replace(repl)
	return render(cfg.MainConfig, cc.Out, doc)
}

// resolveMut evaluates q as a mutable query against file, prepending
// "mut" when the query text lacks it, and returns the live target node
// together with the document root.
func resolveMut(cfg *MainConfig, cc *cli.Context, q, file string) (*ir.Node, *ir.Node, error) {
	plan, err := treeq.Compile(q)
	if err != nil {
		return nil, nil, err
	}
	if plan.Mode != treeq.Mutable {
		plan, err = treeq.Compile("mut " + q)
		if err != nil {
			return nil, nil, err
		}
	}
	doc, err := getDocFile(cfg, cc, file)
	if err != nil {
		return nil, nil, err
	}
	res, err := plan.LookupStrict(doc, treeq.WithEnv(cfg.Env))
	if err != nil {
		return nil, nil, fmt.Errorf("error querying %s with %s: %w", file, q, err)
	}
	target, ok := res.(*ir.Node)
	if !ok {
		return nil, nil, fmt.Errorf("query %s did not resolve to a document node", q)
	}
	return target, doc, nil
}
