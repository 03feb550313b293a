package discovery

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattsolo1/ccpanel/pkg/frontmatter"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
)

// Commands discovers slash-command files and their grouping folders
// under <root>/commands for both scopes.
func (e *Engine) Commands() []models.ConfigItem {
	return e.kindItems(models.KindCommand)
}

// Skills discovers skill files under <root>/skills for both scopes.
// Directories are walked but not emitted as items.
func (e *Engine) Skills() []models.ConfigItem {
	return e.kindItems(models.KindSkill)
}

// SubAgents discovers sub-agent files and their grouping folders under
// <root>/agents for both scopes.
func (e *Engine) SubAgents() []models.ConfigItem {
	return e.kindItems(models.KindSubAgent)
}

// kindItems is the table-driven walk shared by every directory-backed
// kind. Behavior differences (recursive, emit-directories, extension
// set) come entirely from the kind table.
func (e *Engine) kindItems(kind models.Kind) []models.ConfigItem {
	spec, ok := paths.KindSpecFor(kind)
	if !ok {
		return nil
	}

	var items []models.ConfigItem
	for _, scope := range []models.Scope{models.ScopeGlobal, models.ScopeProject} {
		dir, ok := e.resolver.KindDir(kind, scope)
		if !ok {
			continue
		}
		items = append(items, e.walkKindDir(dir, kind, scope, spec)...)
	}
	return items
}

func (e *Engine) walkKindDir(dir string, kind models.Kind, scope models.Scope, spec paths.KindSpec) []models.ConfigItem {
	var items []models.ConfigItem

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Missing kind directory or unreadable subtree: nothing to
			// contribute, not an error.
			if !os.IsNotExist(err) {
				e.log.WithError(err).Debugf("skipping %s", path)
			}
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if spec.AllowDirs {
				items = append(items, models.ConfigItem{
					Name:        d.Name(),
					Path:        path,
					Scope:       scope,
					ScopeLabel:  scopeLabel(scope),
					Kind:        kind,
					IsDirectory: true,
					ParentKind:  kind,
				})
			}
			if !spec.Recursive {
				return fs.SkipDir
			}
			return nil
		}

		if !spec.HasExt(d.Name()) {
			return nil
		}
		items = append(items, models.ConfigItem{
			Name:        d.Name(),
			Path:        path,
			Scope:       scope,
			ScopeLabel:  scopeLabel(scope),
			Kind:        kind,
			Description: e.describe(path),
		})
		return nil
	})
	if err != nil {
		e.log.WithError(err).Debugf("walk of %s ended early", dir)
	}
	return items
}

// describe pulls the frontmatter description out of an artifact file,
// tolerating every failure.
func (e *Engine) describe(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return frontmatter.Describe(string(data))
}

func scopeLabel(scope models.Scope) string {
	switch scope {
	case models.ScopeGlobal:
		return "User"
	case models.ScopeProject:
		return "Project"
	}
	return string(scope)
}
