package discovery

import (
	"sort"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/settings"
)

// Hooks discovers hook configurations from exactly two files, in fixed
// precedence: the global settings.json and the project's
// settings.local.json. Malformed matcher entries are skipped
// individually by the settings layer rather than aborting the file.
func (e *Engine) Hooks() []models.HookConfiguration {
	var configs []models.HookConfiguration

	if path, ok := e.resolver.SettingsFile(models.ScopeGlobal); ok {
		configs = append(configs, e.hooksFromFile(path, models.LocationUser)...)
	}
	if path, ok := e.resolver.LocalSettingsFile(); ok {
		configs = append(configs, e.hooksFromFile(path, models.LocationProject)...)
	}

	return configs
}

func (e *Engine) hooksFromFile(path string, loc models.Location) []models.HookConfiguration {
	doc, err := settings.Load(path)
	if err != nil {
		e.log.WithError(err).Debugf("skipping settings %s for hooks", path)
		return nil
	}

	hooks := doc.Hooks()
	configs := make([]models.HookConfiguration, 0, len(hooks))
	for event, matchers := range hooks {
		configs = append(configs, models.HookConfiguration{
			EventType:  event,
			Matchers:   matchers,
			Location:   loc,
			SourceFile: path,
		})
	}
	// Map iteration order is unstable; sort so a pass is deterministic.
	sort.Slice(configs, func(i, j int) bool { return configs[i].EventType < configs[j].EventType })
	return configs
}
