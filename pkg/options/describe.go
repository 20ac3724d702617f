package options

import (
	"fmt"
	"strings"

	"github.com/hustcer/crowbook/pkg/schema"
)

const notSet = "not set"

// KeyInfo describes a single option for machine-readable documentation.
type KeyInfo struct {
	// Key is the full dotted option name (e.g. "output.epub").
	Key string `json:"key"`

	// Type is the documentation type name (string, boolean, char, integer, path).
	Type string `json:"type"`

	// Default is the literal default, empty when HasDefault is false.
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`

	// Description is the catalog comment.
	Description string `json:"description"`

	// Section is the heading the option is declared under.
	Section string `json:"section,omitempty"`
}

// Description lists every option of the compiled-in catalog, as Markdown
// when md is true and as plain text otherwise.
func Description(md bool) string {
	return DescriptionOf(schema.Entries(), md)
}

// DescriptionOf renders the given catalog entries.
func DescriptionOf(entries []schema.Entry, md bool) string {
	var b strings.Builder
	previousIsHeading := true

	for _, e := range entries {
		if e.IsSection() {
			if !previousIsHeading {
				b.WriteString("\n")
				previousIsHeading = true
			}
			fmt.Fprintf(&b, "### %s ###\n", e.Section)
			continue
		}
		previousIsHeading = false

		def := notSet
		if e.HasDefault {
			def = e.Default
		}

		if md {
			fmt.Fprintf(&b, "- **`%s`**\n", e.Key)
			fmt.Fprintf(&b, "    - **type**: %s\n", e.Kind.HumanName())
			fmt.Fprintf(&b, "    - **default value**: `%s`\n", def)
			if e.Comment != "" {
				fmt.Fprintf(&b, "    - %s\n", e.Comment)
			}
			continue
		}

		line := fmt.Sprintf("- %s (type: %s) (default: %s) %s", e.Key, e.Kind.HumanName(), def, e.Comment)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	return b.String()
}

// DescribeKeys returns structured documentation for the compiled-in catalog.
func DescribeKeys() []KeyInfo {
	return DescribeKeysOf(schema.Entries())
}

// DescribeKeysOf returns structured documentation for the given entries.
func DescribeKeysOf(entries []schema.Entry) []KeyInfo {
	var (
		out     []KeyInfo
		section string
	)
	for _, e := range entries {
		if e.IsSection() {
			section = e.Section
			continue
		}
		out = append(out, KeyInfo{
			Key:         e.Key,
			Type:        e.Kind.HumanName(),
			Default:     e.Default,
			HasDefault:  e.HasDefault,
			Description: e.Comment,
			Section:     section,
		})
	}
	return out
}
