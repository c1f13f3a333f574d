// Package load parses JSON, YAML and TOML documents into ir node
// trees.
package load

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/oj"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/treeq-dev/treeq/ir"
)

type loadOpts struct {
	format Format
}

type Option func(*loadOpts)

// WithFormat selects the document encoding. Load defaults to JSON.
func WithFormat(f Format) Option {
	return func(o *loadOpts) {
		o.format = f
	}
}

// Load parses data into a node tree.
func Load(data []byte, opts ...Option) (*ir.Node, error) {
	lo := &loadOpts{format: JSON}
	for _, opt := range opts {
		opt(lo)
	}
	v, err := parse(data, lo.format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lo.format, err)
	}
	return ir.FromAny(v)
}

// LoadFile reads and parses path, sniffing the format from the file
// extension unless an option overrides it.
func LoadFile(path string, opts ...Option) (*ir.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, append([]Option{WithFormat(FormatForPath(path))}, opts...)...)
}

func parse(data []byte, f Format) (any, error) {
	switch f {
	case JSON:
		return oj.Parse(data)
	case YAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case TOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("unrecognized format %d", f)
}
