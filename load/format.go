package load

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document encoding.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return "<unknown format>"
}

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(v) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("unrecognized format %q (want json, yaml or toml)", v)
}

func Formats() []Format {
	return []Format{JSON, YAML, TOML}
}

// FormatForPath sniffs the format from a file extension, defaulting to
// JSON when the extension is unknown.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return JSON
	}
}
