package mutate

import (
	"fmt"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/settings"
)

// hookSettingsFile maps a scope to the settings file hook discovery
// reads for it: the global settings.json, or the project's
// settings.local.json.
func (e *Engine) hookSettingsFile(scope models.Scope) (string, error) {
	switch scope {
	case models.ScopeGlobal:
		path, _ := e.resolver.SettingsFile(models.ScopeGlobal)
		return path, nil
	case models.ScopeProject:
		path, ok := e.resolver.LocalSettingsFile()
		if !ok {
			return "", ErrNoProject
		}
		return path, nil
	}
	return "", fmt.Errorf("no hook settings file for scope %s", scope)
}

// AddHook appends a hook for an event type. The matcher entry is found
// by exact string equality on matcher; when none matches, a new entry is
// created. The settings file is read fresh (or started from an empty
// document when absent) and written back whole.
func (e *Engine) AddHook(scope models.Scope, event models.HookEventType, matcher string, hook models.Hook) error {
	path, err := e.hookSettingsFile(scope)
	if err != nil {
		return err
	}
	doc, err := settings.Load(path)
	if err != nil {
		return err
	}

	hooks, err := doc.HooksStrict()
	if err != nil {
		return fmt.Errorf("cannot modify hooks: %w", err)
	}
	matchers := hooks[event]

	found := false
	for i := range matchers {
		if matchers[i].Matcher == matcher {
			matchers[i].Hooks = append(matchers[i].Hooks, hook)
			found = true
			break
		}
	}
	if !found {
		matchers = append(matchers, models.HookMatcher{Matcher: matcher, Hooks: []models.Hook{hook}})
	}
	hooks[event] = matchers

	if err := doc.SetHooks(hooks); err != nil {
		return err
	}
	return doc.Save()
}

// UpdateHook replaces the hook at (event, matcherIndex, hookIndex). The
// position is re-resolved against freshly read file content; a stale
// index fails with no partial write.
func (e *Engine) UpdateHook(scope models.Scope, event models.HookEventType, matcherIndex, hookIndex int, hook models.Hook) error {
	path, err := e.hookSettingsFile(scope)
	if err != nil {
		return err
	}
	doc, err := settings.Load(path)
	if err != nil {
		return err
	}
	if !doc.Exists {
		return ErrStaleIndex
	}

	hooks, err := doc.HooksStrict()
	if err != nil {
		return fmt.Errorf("cannot modify hooks: %w", err)
	}
	matchers, ok := hooks[event]
	if !ok || matcherIndex < 0 || matcherIndex >= len(matchers) {
		return ErrStaleIndex
	}
	if hookIndex < 0 || hookIndex >= len(matchers[matcherIndex].Hooks) {
		return ErrStaleIndex
	}

	matchers[matcherIndex].Hooks[hookIndex] = hook
	hooks[event] = matchers

	if err := doc.SetHooks(hooks); err != nil {
		return err
	}
	return doc.Save()
}

// DeleteHook removes the hook at (event, matcherIndex, hookIndex), then
// cascades cleanup: an emptied matcher entry is dropped, an emptied
// event array is dropped, and an emptied hooks object loses the key
// entirely, leaving the file in minimal normalized form.
func (e *Engine) DeleteHook(scope models.Scope, event models.HookEventType, matcherIndex, hookIndex int) error {
	path, err := e.hookSettingsFile(scope)
	if err != nil {
		return err
	}
	doc, err := settings.Load(path)
	if err != nil {
		return err
	}
	if !doc.Exists {
		return ErrStaleIndex
	}

	hooks, err := doc.HooksStrict()
	if err != nil {
		return fmt.Errorf("cannot modify hooks: %w", err)
	}
	matchers, ok := hooks[event]
	if !ok || matcherIndex < 0 || matcherIndex >= len(matchers) {
		return ErrStaleIndex
	}
	entry := matchers[matcherIndex]
	if hookIndex < 0 || hookIndex >= len(entry.Hooks) {
		return ErrStaleIndex
	}

	entry.Hooks = append(entry.Hooks[:hookIndex], entry.Hooks[hookIndex+1:]...)
	if len(entry.Hooks) == 0 {
		matchers = append(matchers[:matcherIndex], matchers[matcherIndex+1:]...)
	} else {
		matchers[matcherIndex] = entry
	}

	if len(matchers) == 0 {
		delete(hooks, event)
	} else {
		hooks[event] = matchers
	}

	if err := doc.SetHooks(hooks); err != nil {
		return err
	}
	return doc.Save()
}
