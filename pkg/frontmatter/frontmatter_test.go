package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := `---
name: deploy
description: Ship the current branch
argument-hint: "[env]"
tools: [Bash, Read]
---

Run the deploy pipeline.
`
	meta, body, err := Parse(content)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "deploy", meta.Name)
	assert.Equal(t, "Ship the current branch", meta.Description)
	assert.Equal(t, "[env]", meta.ArgumentHint)
	assert.Equal(t, []string{"Bash", "Read"}, meta.Tools)
	assert.Equal(t, "\nRun the deploy pipeline.\n", body)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	content := "# Just a heading\n\nNo metadata here.\n"
	meta, body, err := Parse(content)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, content, body)
}

func TestParseMalformedYAML(t *testing.T) {
	content := "---\nname: [unclosed\n---\nbody\n"
	meta, body, err := Parse(content)
	assert.Error(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, content, body)
}

func TestBuildContentRoundTrip(t *testing.T) {
	meta := &Meta{
		Name:        "reviewer",
		Description: "Reviews pull requests",
		Model:       "sonnet",
		Tools:       []string{"Read", "Grep"},
	}
	content := BuildContent(meta, "Look at the diff.\n")

	parsed, body, err := Parse(content)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, meta.Name, parsed.Name)
	assert.Equal(t, meta.Description, parsed.Description)
	assert.Equal(t, meta.Model, parsed.Model)
	assert.Equal(t, meta.Tools, parsed.Tools)
	assert.Equal(t, "\nLook at the diff.\n", body)
}

func TestBuildQuotesSpecialValues(t *testing.T) {
	meta := &Meta{AllowedTools: []string{"Bash(git:*)", "Read"}}
	block := Build(meta)
	assert.Contains(t, block, `allowed-tools: ["Bash(git:*)", Read]`)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Does things", Describe("---\ndescription: Does things\n---\nbody"))
	assert.Empty(t, Describe("no frontmatter"))
	assert.Empty(t, Describe("---\n: bad: [yaml\n---\nbody"))
}
