package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
)

type fixture struct {
	globalRoot string
	projectDir string
	engine     *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	globalRoot := filepath.Join(tmp, "home", ".claude")
	projectDir := filepath.Join(tmp, "project")
	require.NoError(t, os.MkdirAll(globalRoot, 0755))
	require.NoError(t, os.MkdirAll(projectDir, 0755))

	resolver, err := paths.NewResolver(paths.Options{
		ClaudeDir:  globalRoot,
		ProjectDir: projectDir,
	})
	require.NoError(t, err)

	return &fixture{
		globalRoot: globalRoot,
		projectDir: projectDir,
		engine:     New(resolver, nil),
	}
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMemoryDiscoveryDedupesTopLevel(t *testing.T) {
	f := newFixture(t)

	// Top-level canonical file plus three nested copies.
	f.write(t, filepath.Join(f.projectDir, "CLAUDE.md"), "# project")
	f.write(t, filepath.Join(f.projectDir, "src", "CLAUDE.md"), "# src")
	f.write(t, filepath.Join(f.projectDir, "docs", "api", "CLAUDE.md"), "# api")
	f.write(t, filepath.Join(f.projectDir, "tools", "claude.md"), "# tools")

	items := f.engine.Memory()

	var project, nested []models.ConfigItem
	for _, item := range items {
		switch item.Scope {
		case models.ScopeProject:
			project = append(project, item)
		case models.ScopeNested:
			nested = append(nested, item)
		case models.ScopeGlobal:
			t.Fatalf("no global memory file exists, got %s", item.Path)
		}
	}

	require.Len(t, project, 1)
	assert.Equal(t, filepath.Join(f.projectDir, "CLAUDE.md"), project[0].Path)

	require.Len(t, nested, 3)
	for _, item := range nested {
		assert.NotEqual(t, project[0].Path, item.Path, "top-level file must not also appear as nested")
		assert.NotEmpty(t, item.ScopeLabel)
		assert.NotContains(t, item.ScopeLabel, f.projectDir, "nested label is project-relative")
	}
}

func TestMemoryDiscoverySkipsExcludedDirs(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.projectDir, "node_modules", "dep", "CLAUDE.md"), "# dep")
	f.write(t, filepath.Join(f.projectDir, "lib", "CLAUDE.md"), "# lib")

	items := f.engine.Memory()
	require.Len(t, items, 1)
	assert.Equal(t, models.ScopeNested, items[0].Scope)
	assert.Equal(t, filepath.Join("lib", "CLAUDE.md"), items[0].ScopeLabel)
}

func TestMemoryDiscoveryGlobalAndDotClaude(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, "CLAUDE.md"), "# user")
	f.write(t, filepath.Join(f.projectDir, ".claude", "CLAUDE.md"), "# claude dir")

	items := f.engine.Memory()
	require.Len(t, items, 2)
	assert.Equal(t, models.ScopeGlobal, items[0].Scope)
	assert.Equal(t, models.ScopeProject, items[1].Scope)
}

func TestCommandDiscoveryEmitsFoldersAndFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.projectDir, ".claude", "commands", "deploy.md"), "# deploy")
	f.write(t, filepath.Join(f.projectDir, ".claude", "commands", "ops", "restart.md"), "# restart")
	f.write(t, filepath.Join(f.globalRoot, "commands", "fmt.md"), "# fmt")
	// Non-markdown files are ignored.
	f.write(t, filepath.Join(f.globalRoot, "commands", "notes.txt"), "x")

	items := f.engine.Commands()

	byPath := map[string]models.ConfigItem{}
	for _, item := range items {
		byPath[item.Path] = item
	}
	require.Len(t, items, 4)

	folder := byPath[filepath.Join(f.projectDir, ".claude", "commands", "ops")]
	assert.True(t, folder.IsDirectory)
	assert.Equal(t, models.KindCommand, folder.ParentKind)
	assert.Equal(t, models.ScopeProject, folder.Scope)

	global := byPath[filepath.Join(f.globalRoot, "commands", "fmt.md")]
	assert.Equal(t, models.ScopeGlobal, global.Scope)
}

func TestSkillDiscoveryOmitsDirectories(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, "skills", "review", "SKILL.md"), "---\nname: review\ndescription: Reviews code\n---\nbody")

	items := f.engine.Skills()
	require.Len(t, items, 1)
	assert.False(t, items[0].IsDirectory)
	assert.Equal(t, "Reviews code", items[0].Description)
}

func TestMcpDiscoveryMergeOrderAndDefaults(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, ".mcp.json"),
		`{"mcpServers":{"github":{"command":"gh-mcp"}}}`)
	f.write(t, filepath.Join(f.projectDir, ".mcp.json"),
		`{"mcpServers":{"github":{"type":"http","url":"http://localhost:3000"}}}`)
	f.write(t, filepath.Join(f.globalRoot, "mcp-servers", "search.json"),
		`{"command":"search-mcp","args":["--fast"]}`)

	entries := f.engine.McpServers()
	require.Len(t, entries, 3)

	// Same name in two files stays two independent entries, global first.
	assert.Equal(t, "github", entries[0].Name)
	assert.Equal(t, models.LocationUser, entries[0].Location)
	assert.Equal(t, models.McpTypeStdio, entries[0].Type)

	assert.Equal(t, "github", entries[1].Name)
	assert.Equal(t, models.LocationProject, entries[1].Location)
	assert.Equal(t, models.McpTypeHTTP, entries[1].Type)

	assert.Equal(t, "search", entries[2].Name)
	assert.Equal(t, []string{"--fast"}, entries[2].Args)
}

func TestMcpDiscoveryIgnoresMalformedFile(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, ".mcp.json"), "{broken")
	f.write(t, filepath.Join(f.projectDir, ".mcp.json"),
		`{"mcpServers":{"ok":{"command":"ok-mcp"}}}`)

	entries := f.engine.McpServers()
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Name)
}

func TestMcpDiscoveryEmptyMapFileYieldsNothing(t *testing.T) {
	f := newFixture(t)
	// An explicit-but-empty mcpServers key is zero entries, not a phantom
	// stdio server named after the file.
	f.write(t, filepath.Join(f.globalRoot, "mcp-servers", "empty.json"),
		`{"mcpServers": {}}`)
	f.write(t, filepath.Join(f.globalRoot, "mcp-servers", "real.json"),
		`{"command": "real-mcp"}`)

	entries := f.engine.McpServers()
	require.Len(t, entries, 1)
	assert.Equal(t, "real", entries[0].Name)
	assert.Equal(t, "real-mcp", entries[0].Command)
}

func TestPermissionDiscoveryConcatenatesAllFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, "settings.json"),
		`{"permissions":{"allow":["Read"],"deny":["Bash(rm -rf /)"]}}`)
	f.write(t, filepath.Join(f.projectDir, ".claude", "settings.json"),
		`{"permissions":{"allow":["Read"]}}`)
	f.write(t, filepath.Join(f.projectDir, ".claude", "settings.local.json"),
		`{"permissions":{"ask":["WebFetch"]}}`)

	rules := f.engine.Permissions()
	require.Len(t, rules, 4)

	// The duplicate Read rule appears once per file, not deduplicated.
	reads := 0
	for _, r := range rules {
		if r.Tool == "Read" {
			reads++
		}
	}
	assert.Equal(t, 2, reads)
}

func TestPermissionDiscoverySurvivesBadFile(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, "settings.json"), "oops")
	f.write(t, filepath.Join(f.projectDir, ".claude", "settings.json"),
		`{"permissions":{"deny":["Write"]}}`)

	rules := f.engine.Permissions()
	require.Len(t, rules, 1)
	assert.Equal(t, models.PermissionDeny, rules[0].Type)
}

func TestHookDiscoveryReadsTwoFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.globalRoot, "settings.json"),
		`{"hooks":{"PreToolUse":[{"matcher":"Bash","hooks":[{"type":"command","command":"audit"}]}]}}`)
	f.write(t, filepath.Join(f.projectDir, ".claude", "settings.local.json"),
		`{"hooks":{"Stop":[{"hooks":[{"type":"prompt","prompt":"wrap up"}]}]}}`)
	// Hooks in the project settings.json are not part of hook discovery.
	f.write(t, filepath.Join(f.projectDir, ".claude", "settings.json"),
		`{"hooks":{"Stop":[{"hooks":[{"type":"command","command":"ignored"}]}]}}`)

	configs := f.engine.Hooks()
	require.Len(t, configs, 2)

	assert.Equal(t, models.HookPreToolUse, configs[0].EventType)
	assert.Equal(t, models.LocationUser, configs[0].Location)
	assert.Equal(t, models.HookStop, configs[1].EventType)
	assert.Equal(t, models.LocationProject, configs[1].Location)
	assert.Equal(t, "wrap up", configs[1].Matchers[0].Hooks[0].Prompt)
}

func TestAllRunsEveryKind(t *testing.T) {
	f := newFixture(t)
	f.write(t, filepath.Join(f.projectDir, "CLAUDE.md"), "# p")
	f.write(t, filepath.Join(f.globalRoot, "agents", "helper.md"), "---\nname: helper\n---\nbody")

	snap := f.engine.All(context.Background())
	assert.Len(t, snap.Memory, 1)
	assert.Len(t, snap.SubAgents, 1)
	assert.Empty(t, snap.Commands)
}

func TestDiscoveryWithoutProject(t *testing.T) {
	tmp := t.TempDir()
	globalRoot := filepath.Join(tmp, ".claude")
	require.NoError(t, os.MkdirAll(filepath.Join(globalRoot, "commands"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalRoot, "commands", "a.md"), []byte("# a"), 0644))

	resolver, err := paths.NewResolver(paths.Options{ClaudeDir: globalRoot})
	require.NoError(t, err)
	engine := New(resolver, nil)

	snap := engine.All(context.Background())
	assert.Len(t, snap.Commands, 1)
	assert.Empty(t, snap.Memory)
	assert.Empty(t, snap.Hooks)
}
