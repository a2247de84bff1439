package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output and config show --format
const (
	FormatTable = "table"
	FormatTree  = "tree"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// ListingFormats are the formats PR listings can be printed in
func ListingFormats() []string {
	return []string{FormatTable, FormatTree, FormatJSON, FormatYAML}
}

// IsListingFormat reports whether format is valid for --output
func IsListingFormat(format string) bool {
	return slices.Contains(ListingFormats(), format)
}

// Encode writes v to w as json, yaml or toml
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
