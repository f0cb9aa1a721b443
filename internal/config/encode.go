// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatCUE renders the configuration as a loadable config.cue file.
	FormatCUE Format = "cue"
	// FormatYAML renders the configuration as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML renders the configuration as TOML.
	FormatTOML Format = "toml"
)

// ErrInvalidFormat is returned when a Format value is not recognized.
var ErrInvalidFormat = errors.New("invalid output format")

// Format is a configuration output format for `cjc config dump`.
type Format string

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatCUE, FormatYAML, FormatTOML}
}

// Validate returns an error if the format is not recognized.
func (f Format) Validate() error {
	switch f {
	case FormatCUE, FormatYAML, FormatTOML:
		return nil
	default:
		return fmt.Errorf("%w: %q (want cue, yaml or toml)", ErrInvalidFormat, string(f))
	}
}

// Marshal renders cfg in the requested format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return []byte(GenerateCUE(cfg)), nil
	}
}

// GenerateCUE generates a CUE representation of the configuration that
// validates against the #Config schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// cjc launcher configuration\n")
	sb.WriteString("// Every key can also be set from the environment, e.g. CJC_STRICT=true.\n\n")

	// An empty list is invalid in the schema; omit it so defaults apply.
	if len(cfg.Interpreters) > 0 {
		fmt.Fprintf(&sb, "interpreters: %s\n", cueStringList(cfg.Interpreters))
	}
	fmt.Fprintf(&sb, "probe_args: %s\n", cueStringList(cfg.ProbeArgs))
	fmt.Fprintf(&sb, "chunk_size: %d\n", cfg.ChunkSize)
	fmt.Fprintf(&sb, "script_path: %q\n", cfg.ScriptPath)
	fmt.Fprintf(&sb, "strict: %v\n", cfg.Strict)

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.Log.Verbose)
	fmt.Fprintf(&sb, "\tfile: %q\n", cfg.Log.File)
	if cfg.Log.Level != "" {
		fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	if cfg.UI.ColorScheme != "" {
		fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func cueStringList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, fmt.Sprintf("%q", item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
