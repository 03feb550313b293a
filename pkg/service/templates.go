package service

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/ccpanel/pkg/frontmatter"
	"github.com/mattsolo1/ccpanel/pkg/models"
)

// DefaultContent returns starter content for a newly created artifact
// file. name is the base name without extension.
func DefaultContent(kind models.Kind, name string) string {
	title := strings.ReplaceAll(name, "-", " ")

	switch kind {
	case models.KindCommand:
		meta := &frontmatter.Meta{
			Description:  fmt.Sprintf("Run the %s command", title),
			ArgumentHint: "[args]",
		}
		return frontmatter.BuildContent(meta, fmt.Sprintf("# %s\n\nDescribe what this command should do.\n", title))
	case models.KindSkill:
		meta := &frontmatter.Meta{
			Name:        name,
			Description: fmt.Sprintf("Skill: %s", title),
		}
		return frontmatter.BuildContent(meta, fmt.Sprintf("# %s\n\nDescribe when and how to use this skill.\n", title))
	case models.KindSubAgent:
		meta := &frontmatter.Meta{
			Name:        name,
			Description: fmt.Sprintf("Agent: %s", title),
		}
		return frontmatter.BuildContent(meta, fmt.Sprintf("You are the %s agent.\n", title))
	case models.KindMemory:
		return fmt.Sprintf("# %s\n\n", title)
	}
	return ""
}

// FileName returns the on-disk file name for a new artifact of a kind.
func FileName(kind models.Kind, name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".md"
}
