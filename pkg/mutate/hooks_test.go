package mutate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/settings"
)

func localSettingsPath(f *fixture) string {
	return filepath.Join(f.projectDir, ".claude", "settings.local.json")
}

func readHooks(t *testing.T, path string) settings.HookMap {
	t.Helper()
	doc, err := settings.Load(path)
	require.NoError(t, err)
	return doc.Hooks()
}

func TestAddHookCreatesFileAndEntry(t *testing.T) {
	f := newFixture(t)

	hook := models.Hook{Type: "command", Command: "echo hi", Timeout: 30}
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", hook))

	hooks := readHooks(t, localSettingsPath(f))
	matchers := hooks[models.HookPreToolUse]
	require.Len(t, matchers, 1)
	assert.Equal(t, "Bash", matchers[0].Matcher)
	require.Len(t, matchers[0].Hooks, 1)
	assert.Equal(t, "echo hi", matchers[0].Hooks[0].Command)
	assert.Equal(t, 30, matchers[0].Hooks[0].Timeout)
}

func TestAddHookSameMatcherAppendsToOneEntry(t *testing.T) {
	f := newFixture(t)

	first := models.Hook{Type: "command", Command: "first"}
	second := models.Hook{Type: "command", Command: "second"}
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", first))
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", second))

	matchers := readHooks(t, localSettingsPath(f))[models.HookPreToolUse]
	require.Len(t, matchers, 1, "same matcher string shares one entry")
	require.Len(t, matchers[0].Hooks, 2)
	assert.Equal(t, "first", matchers[0].Hooks[0].Command)
	assert.Equal(t, "second", matchers[0].Hooks[1].Command)
}

func TestAddHookDifferentMatcherNewEntry(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", models.Hook{Type: "command", Command: "a"}))
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Edit", models.Hook{Type: "command", Command: "b"}))

	matchers := readHooks(t, localSettingsPath(f))[models.HookPreToolUse]
	require.Len(t, matchers, 2)
}

func TestUpdateHookReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "old"}))

	updated := models.Hook{Type: "prompt", Prompt: "summarize"}
	require.NoError(t, f.engine.UpdateHook(models.ScopeProject, models.HookStop, 0, 0, updated))

	matchers := readHooks(t, localSettingsPath(f))[models.HookStop]
	require.Len(t, matchers[0].Hooks, 1)
	assert.Equal(t, "prompt", matchers[0].Hooks[0].Type)
	assert.Equal(t, "summarize", matchers[0].Hooks[0].Prompt)
	assert.Empty(t, matchers[0].Hooks[0].Command)
}

func TestDeleteHookCascadesToNoHooksKey(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "only"}))

	require.NoError(t, f.engine.DeleteHook(models.ScopeProject, models.HookStop, 0, 0))

	// Removing the last hook of the last matcher of the last event type
	// leaves no hooks key at all, not an empty object.
	data, err := os.ReadFile(localSettingsPath(f))
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "hooks")
}

func TestDeleteHookKeepsSiblings(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", models.Hook{Type: "command", Command: "a"}))
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookPreToolUse, "Bash", models.Hook{Type: "command", Command: "b"}))
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "c"}))

	require.NoError(t, f.engine.DeleteHook(models.ScopeProject, models.HookPreToolUse, 0, 0))

	hooks := readHooks(t, localSettingsPath(f))
	require.Len(t, hooks[models.HookPreToolUse], 1)
	assert.Equal(t, "b", hooks[models.HookPreToolUse][0].Hooks[0].Command)
	require.Len(t, hooks[models.HookStop], 1)
}

func TestDeleteHookStaleIndexFailsCleanly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "only"}))

	before, err := os.ReadFile(localSettingsPath(f))
	require.NoError(t, err)

	err = f.engine.DeleteHook(models.ScopeProject, models.HookStop, 0, 5)
	assert.ErrorIs(t, err, ErrStaleIndex)
	err = f.engine.DeleteHook(models.ScopeProject, models.HookPreToolUse, 0, 0)
	assert.ErrorIs(t, err, ErrStaleIndex)

	// No partial write happened.
	after, err := os.ReadFile(localSettingsPath(f))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUpdateHookOnMissingFileIsStale(t *testing.T) {
	f := newFixture(t)
	err := f.engine.UpdateHook(models.ScopeProject, models.HookStop, 0, 0, models.Hook{Type: "command", Command: "x"})
	assert.ErrorIs(t, err, ErrStaleIndex)
}

func TestHookCrudPreservesUnknownKeys(t *testing.T) {
	f := newFixture(t)
	path := localSettingsPath(f)
	f.write(t, path, `{"model": "opus", "permissions": {"allow": ["Read"]}}`)

	require.NoError(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "x"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "model")
	assert.Contains(t, raw, "permissions")
	assert.Contains(t, raw, "hooks")
}

func TestAddHookRefusesPartiallyParseableFile(t *testing.T) {
	f := newFixture(t)
	path := localSettingsPath(f)

	// One entry is a bare string the lenient reader would skip; a rewrite
	// built from that view would destroy it.
	content := `{"hooks": {"PreToolUse": ["user-owned-but-unparseable", {"matcher": "Bash", "hooks": [{"type": "command", "command": "ok"}]}]}}`
	f.write(t, path, content)

	err := f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "x"})
	require.Error(t, err)

	after, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(after), "refused mutation must not touch the file")
}

func TestHookCrudRefusesWrongShapedHooksKey(t *testing.T) {
	f := newFixture(t)
	path := localSettingsPath(f)

	content := `{"hooks": ["not", "a", "map"]}`
	f.write(t, path, content)

	hook := models.Hook{Type: "command", Command: "x"}
	assert.Error(t, f.engine.AddHook(models.ScopeProject, models.HookStop, "", hook))
	assert.Error(t, f.engine.UpdateHook(models.ScopeProject, models.HookStop, 0, 0, hook))
	assert.Error(t, f.engine.DeleteHook(models.ScopeProject, models.HookStop, 0, 0))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
}

func TestAddHookRefusesEntryWithoutHooksArray(t *testing.T) {
	f := newFixture(t)
	path := localSettingsPath(f)

	content := `{"hooks": {"Stop": [{"matcher": "Bash"}]}}`
	f.write(t, path, content)

	err := f.engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "x"})
	require.Error(t, err)

	after, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(after))
}

func TestHookCrudWithoutProjectFails(t *testing.T) {
	tmp := t.TempDir()
	resolver, err := newResolverWithoutProject(tmp)
	require.NoError(t, err)
	engine := New(resolver, nil, nil)

	err = engine.AddHook(models.ScopeProject, models.HookStop, "", models.Hook{Type: "command", Command: "x"})
	assert.ErrorIs(t, err, ErrNoProject)
}
