package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/treeq-dev/treeq/ir"
	"github.com/treeq-dev/treeq/token"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = ir.ObjectType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// renderColor writes node as colorized YAML-style text.
func renderColor(w io.Writer, node *ir.Node) error {
	b := &strings.Builder{}
	writeColor(b, NewColors(), node, 0)
	if b.Len() == 0 || b.String()[b.Len()-1] != '\n' {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeColor(b *strings.Builder, cs *Colors, y *ir.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch y.Type {
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			b.WriteString("{}\n")
			return
		}
		for i := range y.Fields {
			name := y.Fields[i].String
			if token.QuoteField(name) {
				name = token.Quote(name)
			}
			b.WriteString(pad)
			b.WriteString(cs.Color(ir.ObjectType, FieldColor, name))
			b.WriteString(cs.Color(ir.ObjectType, SepColor, ":"))
			writeColorValue(b, cs, y.Values[i], indent)
		}
	case ir.ArrayType:
		if len(y.Values) == 0 {
			b.WriteString("[]\n")
			return
		}
		for _, v := range y.Values {
			b.WriteString(pad)
			b.WriteString(cs.Color(ir.ArrayType, SepColor, "-"))
			writeColorValue(b, cs, v, indent)
		}
	default:
		b.WriteString(pad)
		b.WriteString(cs.Color(y.Type, ValueColor, scalarText(y)))
		b.WriteByte('\n')
	}
}

// writeColorValue writes a field or element value after its "key:" or
// "-" prefix: leaves inline, containers on following lines.
func writeColorValue(b *strings.Builder, cs *Colors, y *ir.Node, indent int) {
	if y.Type.IsLeaf() {
		b.WriteByte(' ')
		b.WriteString(cs.Color(y.Type, ValueColor, scalarText(y)))
		b.WriteByte('\n')
		return
	}
	if len(y.Fields) == 0 && len(y.Values) == 0 {
		if y.Type == ir.ObjectType {
			b.WriteString(" {}\n")
		} else {
			b.WriteString(" []\n")
		}
		return
	}
	b.WriteByte('\n')
	writeColor(b, cs, y, indent+1)
}

func scalarText(y *ir.Node) string {
	switch y.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(y.Bool)
	case ir.StringType:
		return y.String
	case ir.NumberType:
		switch {
		case y.Int64 != nil:
			return strconv.FormatInt(*y.Int64, 10)
		case y.Float64 != nil:
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		default:
			return y.Number
		}
	}
	return ""
}
