// Package debug provides env-gated diagnostics for treeq internals.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Compile bool
	Eval    bool
	Decode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compile = boolEnv("TREEQ_DEBUG_COMPILE")
	d.Eval = boolEnv("TREEQ_DEBUG_EVAL")
	d.Decode = boolEnv("TREEQ_DEBUG_DECODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compile() bool {
	return d.Compile
}
func Eval() bool {
	return d.Eval
}
func Decode() bool {
	return d.Decode
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
