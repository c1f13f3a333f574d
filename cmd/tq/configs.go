package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/treeq-dev/treeq"
	"github.com/treeq-dev/treeq/load"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	T bool `cli:"name=t aliases=toml desc='read input as toml'"`

	Color bool `cli:"name=color desc='render output with color'"`

	InFormat, OutFormat *load.Format

	Env treeq.Env

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**load.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := load.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// inFormat resolves the input format for path: explicit flags win,
// otherwise the file extension decides.
func (cfg *MainConfig) inFormat(path string) load.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.J:
		return load.JSON
	case cfg.Y:
		return load.YAML
	case cfg.T:
		return load.TOML
	}
	if path != "" && path != "-" {
		return load.FormatForPath(path)
	}
	return load.JSON
}

func (cfg *MainConfig) outFormat() load.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Y {
		return load.YAML
	}
	return load.JSON
}

// envFunc handles one -e path=val argument: val is parsed as a YAML
// value and placed in the query environment under the dotted path.
func envFunc(env treeq.Env, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := map[string]any(env)
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}

func envOptTypeFunc(env treeq.Env) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='patch arg is a file path'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
