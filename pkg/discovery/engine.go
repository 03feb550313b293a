// Package discovery walks the global and project configuration roots and
// rebuilds the full artifact collections from scratch on every pass.
//
// Discovery never fails hard: per-file and per-directory errors are
// logged and contribute nothing, so a pass always completes with a
// possibly-partial result. Nothing is cached between passes; a pass is
// the sole unit of consistency.
package discovery

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
)

// DefaultMaxMemoryResults bounds the recursive nested-memory walk.
const DefaultMaxMemoryResults = 100

// Engine discovers configuration artifacts under the resolver's roots.
type Engine struct {
	resolver         *paths.Resolver
	log              *logrus.Logger
	excludeDirs      map[string]bool
	maxMemoryResults int
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithExcludedDirs replaces the directory names skipped by the nested
// memory walk.
func WithExcludedDirs(names []string) Option {
	return func(e *Engine) {
		e.excludeDirs = make(map[string]bool, len(names))
		for _, n := range names {
			e.excludeDirs[n] = true
		}
	}
}

// WithMaxMemoryResults bounds the nested memory walk's result count.
func WithMaxMemoryResults(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxMemoryResults = n
		}
	}
}

// New creates a discovery engine. A nil logger falls back to a quiet
// default.
func New(resolver *paths.Resolver, log *logrus.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	e := &Engine{
		resolver:         resolver,
		log:              log,
		maxMemoryResults: DefaultMaxMemoryResults,
	}
	WithExcludedDirs(paths.DefaultExcludedDirs())(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot is the result of one full discovery pass.
type Snapshot struct {
	Memory      []models.ConfigItem       `json:"memory"`
	Commands    []models.ConfigItem       `json:"commands"`
	Skills      []models.ConfigItem       `json:"skills"`
	SubAgents   []models.ConfigItem       `json:"subAgents"`
	McpServers  []models.McpServerEntry   `json:"mcpServers"`
	Permissions []models.PermissionRule   `json:"permissions"`
	Hooks       []models.HookConfiguration `json:"hooks"`
}

// All runs every per-kind discovery concurrently and assembles a
// snapshot. The kinds touch disjoint files, so this is an optimization,
// not a correctness requirement; each call only reads. Since per-kind
// discovery never returns an error, neither does All, but the context
// lets a caller abandon a pass that outlived its trigger.
func (e *Engine) All(ctx context.Context) Snapshot {
	var snap Snapshot

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { snap.Memory = e.Memory(); return nil })
	g.Go(func() error { snap.Commands = e.Commands(); return nil })
	g.Go(func() error { snap.Skills = e.Skills(); return nil })
	g.Go(func() error { snap.SubAgents = e.SubAgents(); return nil })
	g.Go(func() error { snap.McpServers = e.McpServers(); return nil })
	g.Go(func() error { snap.Permissions = e.Permissions(); return nil })
	g.Go(func() error { snap.Hooks = e.Hooks(); return nil })
	_ = g.Wait()

	return snap
}

// Items returns the file-backed items of the snapshot for one kind.
func (s Snapshot) Items(kind models.Kind) []models.ConfigItem {
	switch kind {
	case models.KindMemory:
		return s.Memory
	case models.KindCommand:
		return s.Commands
	case models.KindSkill:
		return s.Skills
	case models.KindSubAgent:
		return s.SubAgents
	}
	return nil
}
