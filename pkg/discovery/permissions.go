package discovery

import (
	"os"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/settings"
)

// Permissions discovers permission rules from the settings files in
// fixed precedence order: global user settings, project settings,
// project local-override settings, and the managed settings path for
// this platform. Rules are concatenated with no deduplication; a rule
// string appearing in two files yields two entries. A file that fails
// to parse or lacks a permissions object contributes zero rules.
func (e *Engine) Permissions() []models.PermissionRule {
	var rules []models.PermissionRule

	if path, ok := e.resolver.SettingsFile(models.ScopeGlobal); ok {
		rules = append(rules, e.rulesFromFile(path, models.LocationUser)...)
	}
	if path, ok := e.resolver.SettingsFile(models.ScopeProject); ok {
		rules = append(rules, e.rulesFromFile(path, models.LocationProject)...)
	}
	if path, ok := e.resolver.LocalSettingsFile(); ok {
		rules = append(rules, e.rulesFromFile(path, models.LocationProject)...)
	}
	if path := e.resolver.ManagedSettingsFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			rules = append(rules, e.rulesFromFile(path, models.LocationManaged)...)
		}
	}

	return rules
}

func (e *Engine) rulesFromFile(path string, loc models.Location) []models.PermissionRule {
	doc, err := settings.Load(path)
	if err != nil {
		e.log.WithError(err).Debugf("skipping settings %s for permissions", path)
		return nil
	}
	return doc.Permissions().Rules(loc, path)
}
