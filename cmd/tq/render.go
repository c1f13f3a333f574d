package main

import (
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/ohler55/ojg/oj"

	"github.com/treeq-dev/treeq/ir"
	"github.com/treeq-dev/treeq/load"
)

// renderResult writes a query result: document nodes render per the
// output format, cast scalars and containers render as plain values.
func renderResult(cfg *MainConfig, w io.Writer, res any) error {
	if node, ok := res.(*ir.Node); ok {
		return render(cfg, w, node)
	}
	return renderAny(cfg, w, res)
}

func render(cfg *MainConfig, w io.Writer, node *ir.Node) error {
	v, err := ir.ToAny(node)
	if err != nil {
		return err
	}
	return renderAny(cfg, w, v)
}

func renderAny(cfg *MainConfig, w io.Writer, v any) error {
	if cfg.outFormat() == load.YAML {
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	if _, err := io.WriteString(w, oj.JSON(v, 2)); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

// renderPretty is render plus color when the output is a terminal or
// -color is set.
func renderPretty(cfg *MainConfig, w io.Writer, node *ir.Node) error {
	if useColor(cfg, w) {
		return renderColor(w, node)
	}
	return render(cfg, w, node)
}

func useColor(cfg *MainConfig, w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
