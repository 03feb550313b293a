package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/paths"
	"github.com/mattsolo1/ccpanel/pkg/settings"
)

// McpServers discovers MCP server definitions. Sources are read in merge
// order: the global .mcp.json, the project .mcp.json, the managed config
// (first existing platform path), then loose files under each root's
// mcp-servers directory. Entries with the same name in different files
// stay independent; only within one file's map do standard last-key-wins
// object semantics apply.
func (e *Engine) McpServers() []models.McpServerEntry {
	var entries []models.McpServerEntry

	if path, ok := e.resolver.McpConfigFile(models.ScopeGlobal); ok {
		entries = append(entries, e.serversFromFile(path, models.LocationUser)...)
	}
	if path, ok := e.resolver.McpConfigFile(models.ScopeProject); ok {
		entries = append(entries, e.serversFromFile(path, models.LocationProject)...)
	}
	if path := e.resolver.ManagedMcpFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			entries = append(entries, e.serversFromFile(path, models.LocationManaged)...)
		}
	}

	entries = append(entries, e.serversFromDir(e.resolver.GlobalRoot(), models.LocationUser)...)
	if root, ok := e.resolver.ProjectRoot(); ok {
		entries = append(entries, e.serversFromDir(root, models.LocationProject)...)
	}

	return entries
}

// serversFromFile parses one mcpServers map document.
func (e *Engine) serversFromFile(path string, loc models.Location) []models.McpServerEntry {
	cfg, err := settings.LoadMcpConfig(path)
	if err != nil {
		e.log.WithError(err).Debugf("skipping mcp config %s", path)
		return nil
	}

	return entriesFromServers(cfg.Servers, loc, path)
}

// entriesFromServers turns a parsed server map into sorted entries. Map
// iteration order is unstable, so sorting keeps a pass deterministic.
func entriesFromServers(servers map[string]models.McpServerDefinition, loc models.Location, path string) []models.McpServerEntry {
	entries := make([]models.McpServerEntry, 0, len(servers))
	for name, def := range servers {
		entries = append(entries, models.NewMcpServerEntry(name, def, loc, path))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// serversFromDir scans <root>/mcp-servers for loose single-server JSON
// files. The server name is the file's base name; a file may instead
// hold a full mcpServers map, in which case every entry is taken.
func (e *Engine) serversFromDir(root string, loc models.Location) []models.McpServerEntry {
	dir := filepath.Join(root, paths.McpServersDir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			e.log.WithError(err).Debugf("skipping mcp servers dir %s", dir)
		}
		return nil
	}

	var entries []models.McpServerEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, de.Name())

		// A file with an mcpServers key is a map document, even when the
		// map is empty; only keyless files are single definitions.
		cfg, err := settings.LoadMcpConfig(path)
		if err == nil && cfg.Servers != nil {
			entries = append(entries, entriesFromServers(cfg.Servers, loc, path)...)
			continue
		}

		def, err := settings.LoadMcpServerFile(path)
		if err != nil {
			e.log.WithError(err).Debugf("skipping mcp server file %s", path)
			continue
		}
		name := strings.TrimSuffix(de.Name(), filepath.Ext(de.Name()))
		entries = append(entries, models.NewMcpServerEntry(name, def, loc, path))
	}
	return entries
}
