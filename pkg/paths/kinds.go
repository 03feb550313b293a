package paths

import (
	"regexp"
	"strings"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

// KindSpec describes how one artifact kind maps onto the filesystem.
// Adding a kind is a one-row change here, not new branching in the
// engines.
type KindSpec struct {
	// Subdir is the fixed directory name under a scope root.
	Subdir string
	// Recursive walks subdirectories instead of only the top level.
	Recursive bool
	// AllowDirs emits directories themselves as grouping items.
	AllowDirs bool
	// Exts filters files by extension; empty means every file.
	Exts []string
}

// McpServersDir is the directory scanned for loose file-based server
// definitions under each root.
const McpServersDir = "mcp-servers"

var kindSpecs = map[models.Kind]KindSpec{
	models.KindCommand:  {Subdir: "commands", Recursive: true, AllowDirs: true, Exts: markdownExts},
	models.KindSkill:    {Subdir: "skills", Recursive: true, AllowDirs: false, Exts: markdownExts},
	models.KindSubAgent: {Subdir: "agents", Recursive: true, AllowDirs: true, Exts: markdownExts},
}

var markdownExts = []string{".md", ".markdown"}

// KindSpecFor looks up the filesystem mapping for a kind. Kinds without
// a directory mapping (memory, MCP, permissions, hooks) return false.
func KindSpecFor(kind models.Kind) (KindSpec, bool) {
	spec, ok := kindSpecs[kind]
	return spec, ok
}

// HasExt reports whether name carries one of the spec's extensions.
func (s KindSpec) HasExt(name string) bool {
	if len(s.Exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range s.Exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// MemoryFileName is the canonical project-instructions file.
const MemoryFileName = "CLAUDE.md"

// IsMemoryFileName matches the canonical memory filename, accepting any
// casing variant.
func IsMemoryFileName(name string) bool {
	return strings.EqualFold(name, MemoryFileName)
}

// MemoryVariants lists the accepted filename spellings in priority
// order; the first variant present at a location wins and the rest are
// ignored there.
func MemoryVariants() []string {
	return []string{"CLAUDE.md", "Claude.md", "claude.md"}
}

// DefaultExcludedDirs are skipped by the nested memory walk. Dependency
// and VCS trees are never interesting and can be enormous.
func DefaultExcludedDirs() []string {
	return []string{
		".git",
		"node_modules",
		"vendor",
		"dist",
		"build",
		"target",
		".venv",
		"venv",
		"__pycache__",
		".next",
		".cache",
	}
}

// groupingDirs are the only parent directories auto-removed when a file
// deletion leaves them empty. The set is literal directory names, not a
// structural rule; deeper nesting is never auto-cleaned.
var groupingDirs = map[string]bool{
	"skills":   true,
	"agents":   true,
	"commands": true,
}

// IsGroupingDir reports whether base is one of the auto-clean directory
// names.
func IsGroupingDir(base string) bool {
	return groupingDirs[base]
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidName reports whether a caller-supplied file or folder base name
// is acceptable for create and rename operations.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}
