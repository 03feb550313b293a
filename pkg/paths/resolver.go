package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

const (
	// ClaudeDirName is the per-project configuration directory.
	ClaudeDirName = ".claude"

	settingsFileName      = "settings.json"
	localSettingsFileName = "settings.local.json"
	mcpConfigFileName     = ".mcp.json"
)

// Options configures a Resolver. Both fields are optional: an empty
// ClaudeDir falls back to ~/.claude, an empty ProjectDir means no
// project is open.
type Options struct {
	// ClaudeDir overrides the global configuration root.
	ClaudeDir string
	// ProjectDir is the top level of the open project, if any.
	ProjectDir string
}

// Resolver computes every convention-based path the engines touch. It is
// constructed once from explicit options and injected everywhere; no
// component re-reads process-wide state for paths.
type Resolver struct {
	globalRoot string
	projectDir string
}

// NewResolver builds a resolver from options, defaulting the global root
// to ~/.claude.
func NewResolver(opts Options) (*Resolver, error) {
	globalRoot := opts.ClaudeDir
	if globalRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		globalRoot = filepath.Join(home, ClaudeDirName)
	}
	return &Resolver{
		globalRoot: globalRoot,
		projectDir: opts.ProjectDir,
	}, nil
}

// GlobalRoot returns the global configuration root. Always defined.
func (r *Resolver) GlobalRoot() string {
	return r.globalRoot
}

// HasProject reports whether a project is open. All engines must treat
// "no project" as a valid state and skip project-scoped work.
func (r *Resolver) HasProject() bool {
	return r.projectDir != ""
}

// ProjectDir returns the top level of the open project.
func (r *Resolver) ProjectDir() (string, bool) {
	return r.projectDir, r.projectDir != ""
}

// ProjectRoot returns the project's configuration root (<project>/.claude).
func (r *Resolver) ProjectRoot() (string, bool) {
	if r.projectDir == "" {
		return "", false
	}
	return filepath.Join(r.projectDir, ClaudeDirName), true
}

// Root returns the configuration root for a scope.
func (r *Resolver) Root(scope models.Scope) (string, bool) {
	switch scope {
	case models.ScopeGlobal:
		return r.globalRoot, true
	case models.ScopeProject:
		return r.ProjectRoot()
	}
	return "", false
}

// ScopeOf derives the scope of a path by prefix match against the two
// roots. Paths under neither root are nested (only memory discovery
// produces those).
func (r *Resolver) ScopeOf(path string) models.Scope {
	if root, ok := r.ProjectRoot(); ok && isWithin(root, path) {
		return models.ScopeProject
	}
	if isWithin(r.globalRoot, path) {
		return models.ScopeGlobal
	}
	return models.ScopeNested
}

// SettingsFile returns the settings.json path for a scope.
func (r *Resolver) SettingsFile(scope models.Scope) (string, bool) {
	root, ok := r.Root(scope)
	if !ok {
		return "", false
	}
	return filepath.Join(root, settingsFileName), true
}

// LocalSettingsFile returns the project's gitignored override settings
// file. Only defined when a project is open.
func (r *Resolver) LocalSettingsFile() (string, bool) {
	root, ok := r.ProjectRoot()
	if !ok {
		return "", false
	}
	return filepath.Join(root, localSettingsFileName), true
}

// McpConfigFile returns the .mcp.json document for a scope. The project
// copy lives at the project top level, not under .claude.
func (r *Resolver) McpConfigFile(scope models.Scope) (string, bool) {
	switch scope {
	case models.ScopeGlobal:
		return filepath.Join(r.globalRoot, mcpConfigFileName), true
	case models.ScopeProject:
		dir, ok := r.ProjectDir()
		if !ok {
			return "", false
		}
		return filepath.Join(dir, mcpConfigFileName), true
	}
	return "", false
}

// ManagedSettingsFile returns the enterprise-managed settings path for
// the current OS, empty on unsupported platforms. The file is read-only
// from this tool's perspective.
func (r *Resolver) ManagedSettingsFile() string {
	return managedPath("managed-settings.json")
}

// ManagedMcpFile returns the enterprise-managed MCP config path for the
// current OS, empty on unsupported platforms.
func (r *Resolver) ManagedMcpFile() string {
	return managedPath("managed-mcp.json")
}

func managedPath(name string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join("/Library", "Application Support", "ClaudeCode", name)
	case "linux":
		return filepath.Join("/etc", "claude-code", name)
	case "windows":
		return filepath.Join(`C:\`, "ProgramData", "ClaudeCode", name)
	}
	return ""
}

// KindDir returns the directory holding artifacts of a kind under the
// given scope's root, per the kind table.
func (r *Resolver) KindDir(kind models.Kind, scope models.Scope) (string, bool) {
	spec, ok := KindSpecFor(kind)
	if !ok || spec.Subdir == "" {
		return "", false
	}
	root, ok := r.Root(scope)
	if !ok {
		return "", false
	}
	return filepath.Join(root, spec.Subdir), true
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !hasDotDotPrefix(rel))
}

func hasDotDotPrefix(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
