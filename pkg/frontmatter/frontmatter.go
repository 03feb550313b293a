package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// Meta is the structured metadata at the top of a command, skill, or
// sub-agent markdown file.
type Meta struct {
	Name         string   `yaml:"name,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	ArgumentHint string   `yaml:"argument-hint,omitempty"`
	Model        string   `yaml:"model,omitempty"`
	Color        string   `yaml:"color,omitempty"`
	Tools        []string `yaml:"tools,omitempty"`
	AllowedTools []string `yaml:"allowed-tools,omitempty"`
}

// Parse extracts frontmatter from content and returns the parsed
// metadata and the body. Content without a frontmatter block returns a
// nil Meta and the content unchanged.
func Parse(content string) (*Meta, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var meta Meta
	if err := yaml.Unmarshal([]byte(matches[1]), &meta); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return &meta, matches[2], nil
}

// Build renders a Meta back to a YAML frontmatter block with a stable
// field order.
func Build(meta *Meta) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	if meta.Name != "" {
		sb.WriteString(fmt.Sprintf("name: %s\n", meta.Name))
	}
	if meta.Description != "" {
		sb.WriteString(fmt.Sprintf("description: %s\n", meta.Description))
	}
	if meta.ArgumentHint != "" {
		sb.WriteString(fmt.Sprintf("argument-hint: %s\n", meta.ArgumentHint))
	}
	if meta.Model != "" {
		sb.WriteString(fmt.Sprintf("model: %s\n", meta.Model))
	}
	if meta.Color != "" {
		sb.WriteString(fmt.Sprintf("color: %s\n", meta.Color))
	}
	if len(meta.Tools) > 0 {
		sb.WriteString(fmt.Sprintf("tools: %s\n", formatYAMLArray(meta.Tools)))
	}
	if len(meta.AllowedTools) > 0 {
		sb.WriteString(fmt.Sprintf("allowed-tools: %s\n", formatYAMLArray(meta.AllowedTools)))
	}
	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body into a complete document.
func BuildContent(meta *Meta, body string) string {
	block := Build(meta)
	if !strings.HasPrefix(body, "\n") {
		return block + "\n\n" + body
	}
	return block + "\n" + body
}

// Describe reads just the description field from file content, tolerating
// any parse failure. Discovery uses this to label items without caring
// whether the file has frontmatter at all.
func Describe(content string) string {
	meta, _, err := Parse(content)
	if err != nil || meta == nil {
		return ""
	}
	return meta.Description
}

// formatYAMLArray formats a string slice as a YAML flow-style array.
func formatYAMLArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		if needsQuoting(item) {
			quoted[i] = fmt.Sprintf("%q", item)
		} else {
			quoted[i] = item
		}
	}
	return fmt.Sprintf("[%s]", strings.Join(quoted, ", "))
}

// needsQuoting checks if a string needs to be quoted in YAML.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, ":#{}[],&*?|-<>=!%@`\"'")
}
