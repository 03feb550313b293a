// Package service is the facade the CLI and TUI call into: one full or
// per-kind discovery surface plus the mutation operations, constructed
// from explicit configuration.
package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/ccpanel/pkg/discovery"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/mutate"
	"github.com/mattsolo1/ccpanel/pkg/paths"
	"github.com/mattsolo1/ccpanel/pkg/watch"
)

// Config holds service configuration, injected at construction rather
// than read ad hoc from process-wide state.
type Config struct {
	// ClaudeDir overrides the global root (default ~/.claude).
	ClaudeDir string
	// ProjectDir is the open project's top level; empty means no project.
	ProjectDir string
	// Editor launches on open-in-editor actions.
	Editor string
	// Debounce coalesces file-change notifications into one refresh.
	Debounce time.Duration
	// ExcludeDirs overrides the nested-memory walk's skip list.
	ExcludeDirs []string
	// MaxMemoryResults bounds the nested-memory walk.
	MaxMemoryResults int
}

// Service wires the resolver, discovery engine, and mutation engine
// together.
type Service struct {
	Resolver  *paths.Resolver
	Discovery *discovery.Engine
	Mutation  *mutate.Engine

	cfg Config
	log *logrus.Logger
}

// New creates a service. prompter may be nil, in which case every
// collision prompt answers cancel.
func New(cfg Config, prompter mutate.Prompter, log *logrus.Logger) (*Service, error) {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	resolver, err := paths.NewResolver(paths.Options{
		ClaudeDir:  cfg.ClaudeDir,
		ProjectDir: cfg.ProjectDir,
	})
	if err != nil {
		return nil, err
	}

	var opts []discovery.Option
	if len(cfg.ExcludeDirs) > 0 {
		opts = append(opts, discovery.WithExcludedDirs(cfg.ExcludeDirs))
	}
	if cfg.MaxMemoryResults > 0 {
		opts = append(opts, discovery.WithMaxMemoryResults(cfg.MaxMemoryResults))
	}

	return &Service{
		Resolver:  resolver,
		Discovery: discovery.New(resolver, log, opts...),
		Mutation:  mutate.New(resolver, prompter, log),
		cfg:       cfg,
		log:       log,
	}, nil
}

// Editor returns the configured editor command.
func (s *Service) Editor() string {
	return s.cfg.Editor
}

// DiscoverAll runs one full discovery pass.
func (s *Service) DiscoverAll(ctx context.Context) discovery.Snapshot {
	return s.Discovery.All(ctx)
}

// Watch starts a filesystem watcher over every directory discovery
// reads, invoking refresh after changes settle.
func (s *Service) Watch(refresh func()) (*watch.Watcher, error) {
	return watch.New(s.watchDirs(), s.cfg.Debounce, refresh, s.log)
}

// watchDirs lists the roots and kind directories worth watching.
func (s *Service) watchDirs() []string {
	dirs := []string{s.Resolver.GlobalRoot()}
	if root, ok := s.Resolver.ProjectRoot(); ok {
		dirs = append(dirs, root)
	}
	if dir, ok := s.Resolver.ProjectDir(); ok {
		dirs = append(dirs, dir)
	}
	for _, kind := range []models.Kind{models.KindCommand, models.KindSkill, models.KindSubAgent} {
		for _, scope := range []models.Scope{models.ScopeGlobal, models.ScopeProject} {
			if dir, ok := s.Resolver.KindDir(kind, scope); ok {
				dirs = append(dirs, dir)
			}
		}
	}
	for _, scope := range []models.Scope{models.ScopeGlobal, models.ScopeProject} {
		if root, ok := s.Resolver.Root(scope); ok {
			dirs = append(dirs, filepath.Join(root, paths.McpServersDir))
		}
	}
	return dirs
}
