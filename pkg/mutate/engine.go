// Package mutate performs create, move, rename, and delete operations
// against discovered configuration artifacts, and hook CRUD against
// settings files.
//
// Every operation either succeeds or reports a definite failure having
// left the filesystem as it found it: documents are fully computed in
// memory before a single write, and no operation is retried.
package mutate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
)

var (
	// ErrAlreadyInScope means a scope move targeted the item's current
	// scope. The filesystem is untouched.
	ErrAlreadyInScope = errors.New("already in the requested scope")
	// ErrNoProject means a project-scoped operation ran with no project
	// open.
	ErrNoProject = errors.New("no project is open")
	// ErrExists means the target path already exists and the operation
	// offers no overwrite.
	ErrExists = errors.New("target already exists")
	// ErrCancelled means the user declined a collision or confirmation
	// prompt.
	ErrCancelled = errors.New("cancelled")
	// ErrInvalidName means a supplied name fails the [A-Za-z0-9_-]+ rule.
	ErrInvalidName = errors.New("name must contain only letters, digits, hyphens, and underscores")
	// ErrNotConfirmed means a destructive operation ran without explicit
	// confirmation.
	ErrNotConfirmed = errors.New("deletion requires explicit confirmation")
	// ErrStaleIndex means an index-addressed hook no longer exists in
	// the freshly read settings file. Nothing was written.
	ErrStaleIndex = errors.New("hook no longer exists at that position")
)

// CollisionDecision is the outcome of a collision prompt.
type CollisionDecision int

const (
	CollisionCancel CollisionDecision = iota
	CollisionOverwrite
	CollisionRename
)

// Prompter resolves name collisions interactively. The presentation
// layer supplies one; tests use stubs. ResolveCollision's name return is
// only consulted for CollisionRename, and allowRename=false limits the
// legal answers to overwrite or cancel.
type Prompter interface {
	ResolveCollision(target string, allowRename bool) (CollisionDecision, string, error)
}

// Engine performs filesystem and settings mutations.
type Engine struct {
	resolver *paths.Resolver
	prompter Prompter
	log      *logrus.Logger
}

// New creates a mutation engine. A nil prompter answers cancel to every
// collision; a nil logger falls back to a quiet default.
func New(resolver *paths.Resolver, prompter Prompter, log *logrus.Logger) *Engine {
	if prompter == nil {
		prompter = cancelPrompter{}
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Engine{resolver: resolver, prompter: prompter, log: log}
}

type cancelPrompter struct{}

func (cancelPrompter) ResolveCollision(string, bool) (CollisionDecision, string, error) {
	return CollisionCancel, "", nil
}

// MoveScope moves an artifact to the other scope's canonical directory
// for its kind, as a single rename after the target tree exists. Moving
// to the item's current scope is a no-op error; collisions go through
// the prompter with overwrite, rename, and cancel all on offer.
func (e *Engine) MoveScope(item models.ConfigItem, target models.Scope) (string, error) {
	if item.Scope == target {
		return "", fmt.Errorf("%s: %w", item.Name, ErrAlreadyInScope)
	}
	if target == models.ScopeProject && !e.resolver.HasProject() {
		return "", ErrNoProject
	}

	dir, ok := e.resolver.KindDir(item.Kind, target)
	if !ok {
		return "", fmt.Errorf("kind %s has no directory in scope %s", item.Kind, target)
	}

	targetPath := filepath.Join(dir, item.Name)
	resolved, err := e.resolveCollision(targetPath, true)
	if err != nil {
		return "", err
	}
	targetPath = resolved

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return "", fmt.Errorf("ensure target directory: %w", err)
	}
	if err := os.Rename(item.Path, targetPath); err != nil {
		return "", fmt.Errorf("move %s: %w", item.Name, err)
	}
	e.log.Debugf("moved %s -> %s", item.Path, targetPath)
	return targetPath, nil
}

// CreateFile creates a new artifact file with verbatim UTF-8 content.
// folder, when non-empty, nests the file under a folder path relative to
// the kind directory. Collisions offer overwrite or cancel only.
func (e *Engine) CreateFile(kind models.Kind, scope models.Scope, name, content, folder string) (string, error) {
	if scope == models.ScopeProject && !e.resolver.HasProject() {
		return "", ErrNoProject
	}
	dir, ok := e.resolver.KindDir(kind, scope)
	if !ok {
		return "", fmt.Errorf("kind %s has no directory mapping", kind)
	}
	if folder != "" {
		dir = filepath.Join(dir, folder)
	}

	targetPath := filepath.Join(dir, name)
	if _, err := os.Stat(targetPath); err == nil {
		decision, _, err := e.prompter.ResolveCollision(targetPath, false)
		if err != nil {
			return "", err
		}
		if decision != CollisionOverwrite {
			return "", ErrCancelled
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ensure directories: %w", err)
	}
	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return targetPath, nil
}

// CreateFolder creates a grouping folder under the kind's directory.
func (e *Engine) CreateFolder(kind models.Kind, scope models.Scope, name string) (string, error) {
	if !paths.ValidName(name) {
		return "", ErrInvalidName
	}
	if scope == models.ScopeProject && !e.resolver.HasProject() {
		return "", ErrNoProject
	}
	dir, ok := e.resolver.KindDir(kind, scope)
	if !ok {
		return "", fmt.Errorf("kind %s has no directory mapping", kind)
	}

	targetPath := filepath.Join(dir, name)
	if _, err := os.Stat(targetPath); err == nil {
		return "", fmt.Errorf("folder %s: %w", name, ErrExists)
	}
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}
	return targetPath, nil
}

// Delete removes an artifact. Directories are removed recursively. After
// a file removal, the parent directory is also removed when its base
// name is one of the grouping directory names and it is now empty; that
// cleanup is best-effort, since the removal the caller asked for already
// succeeded.
func (e *Engine) Delete(item models.ConfigItem, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if item.IsDirectory {
		if err := os.RemoveAll(item.Path); err != nil {
			return fmt.Errorf("delete folder %s: %w", item.Name, err)
		}
		return nil
	}

	if err := os.Remove(item.Path); err != nil {
		return fmt.Errorf("delete %s: %w", item.Name, err)
	}

	parent := filepath.Dir(item.Path)
	if paths.IsGroupingDir(filepath.Base(parent)) {
		if entries, err := os.ReadDir(parent); err == nil && len(entries) == 0 {
			if err := os.Remove(parent); err != nil {
				e.log.WithError(err).Debugf("could not remove empty parent %s", parent)
			}
		}
	}
	return nil
}

// Rename changes an artifact's base name in place. Files keep their
// original extension; directories rename wholesale. An existing target
// is a hard failure with no merge or overwrite offered.
func (e *Engine) Rename(item models.ConfigItem, newName string) (string, error) {
	if !paths.ValidName(newName) {
		return "", ErrInvalidName
	}

	dir := filepath.Dir(item.Path)
	target := filepath.Join(dir, newName)
	if !item.IsDirectory {
		target += filepath.Ext(item.Path)
	}
	if target == item.Path {
		return item.Path, nil
	}
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("rename to %s: %w", filepath.Base(target), ErrExists)
	}

	if err := os.Rename(item.Path, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", item.Name, err)
	}
	return target, nil
}

// resolveCollision runs the prompter loop for a move target. Returns the
// (possibly renamed) target path.
func (e *Engine) resolveCollision(targetPath string, allowRename bool) (string, error) {
	for {
		if _, err := os.Stat(targetPath); err != nil {
			return targetPath, nil
		}

		decision, newName, err := e.prompter.ResolveCollision(targetPath, allowRename)
		if err != nil {
			return "", err
		}
		switch decision {
		case CollisionOverwrite:
			return targetPath, nil
		case CollisionRename:
			if !allowRename || newName == "" {
				return "", ErrCancelled
			}
			base := strings.TrimSuffix(newName, filepath.Ext(newName))
			if !paths.ValidName(base) {
				return "", ErrInvalidName
			}
			if filepath.Ext(newName) == "" {
				newName += filepath.Ext(targetPath)
			}
			targetPath = filepath.Join(filepath.Dir(targetPath), newName)
		default:
			return "", ErrCancelled
		}
	}
}
