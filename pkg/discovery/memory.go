package discovery

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
)

// Memory discovers CLAUDE.md files. Canonical locations each contribute
// at most one item (first matching filename variant wins): the global
// root, the project top level, and the project's .claude directory. The
// rest of the project tree is then walked recursively for nested copies,
// bounded by maxMemoryResults, skipping excluded directories and the
// already-claimed project top-level file.
func (e *Engine) Memory() []models.ConfigItem {
	var items []models.ConfigItem

	if path, ok := e.memoryAt(e.resolver.GlobalRoot()); ok {
		items = append(items, models.ConfigItem{
			Name:       filepath.Base(path),
			Path:       path,
			Scope:      models.ScopeGlobal,
			ScopeLabel: "User memory",
			Kind:       models.KindMemory,
		})
	}

	projectDir, open := e.resolver.ProjectDir()
	if !open {
		return items
	}

	claimed := map[string]bool{}
	if path, ok := e.memoryAt(projectDir); ok {
		claimed[path] = true
		items = append(items, models.ConfigItem{
			Name:       filepath.Base(path),
			Path:       path,
			Scope:      models.ScopeProject,
			ScopeLabel: "Project memory",
			Kind:       models.KindMemory,
		})
	}

	if root, ok := e.resolver.ProjectRoot(); ok {
		if path, ok := e.memoryAt(root); ok {
			claimed[path] = true
			items = append(items, models.ConfigItem{
				Name:       filepath.Base(path),
				Path:       path,
				Scope:      models.ScopeProject,
				ScopeLabel: "Project memory (.claude)",
				Kind:       models.KindMemory,
			})
		}
	}

	items = append(items, e.nestedMemory(projectDir, claimed)...)
	return items
}

// memoryAt returns the first canonical filename variant present directly
// inside dir.
func (e *Engine) memoryAt(dir string) (string, bool) {
	for _, variant := range paths.MemoryVariants() {
		candidate := filepath.Join(dir, variant)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate, true
	}
	return "", false
}

// nestedMemory walks the whole project tree for memory files outside the
// canonical locations.
func (e *Engine) nestedMemory(projectDir string, claimed map[string]bool) []models.ConfigItem {
	var items []models.ConfigItem

	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree contributes nothing.
			e.log.WithError(err).Debugf("skipping %s during memory walk", path)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != projectDir && e.excludeDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !paths.IsMemoryFileName(d.Name()) {
			return nil
		}
		if claimed[path] || filepath.Dir(path) == projectDir {
			// Canonical-location files are never duplicated as nested.
			return nil
		}

		rel, relErr := filepath.Rel(projectDir, path)
		if relErr != nil {
			rel = path
		}
		items = append(items, models.ConfigItem{
			Name:       d.Name(),
			Path:       path,
			Scope:      models.ScopeNested,
			ScopeLabel: rel,
			Kind:       models.KindMemory,
		})
		if len(items) >= e.maxMemoryResults {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		e.log.WithError(err).Debug("nested memory walk ended early")
	}
	return items
}
