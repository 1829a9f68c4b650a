package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// render writes v in the requested format. markdown is nil for results that
// have no markdown rendering.
func render(w io.Writer, format string, v interface{}, markdown func() string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "md", "markdown":
		if markdown == nil {
			return fmt.Errorf("markdown output is only available for report")
		}
		_, err := io.WriteString(w, markdown())
		return err
	default:
		return fmt.Errorf("unsupported format %q (use json, yaml or md)", format)
	}
}
