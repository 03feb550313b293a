package models

// McpServerType is the transport a server definition declares.
type McpServerType string

const (
	McpTypeStdio McpServerType = "stdio"
	McpTypeHTTP  McpServerType = "http"
	McpTypeSSE   McpServerType = "sse"
)

// McpServerDefinition is the raw server definition as it appears in an
// mcpServers map. Type defaults to stdio when absent.
type McpServerDefinition struct {
	Type    string            `json:"type,omitempty"`
	URL     string            `json:"url,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// McpServerEntry is one discovered MCP server. Name is unique within a
// single config file's map (standard last-key-wins JSON semantics) but
// the same name in two different files yields two independent entries.
type McpServerEntry struct {
	Name       string        `json:"name"`
	Type       McpServerType `json:"type"`
	Location   Location      `json:"location"`
	SourceFile string        `json:"sourceFile"`
	URL        string        `json:"url,omitempty"`
	Command    string        `json:"command,omitempty"`
	Args       []string      `json:"args,omitempty"`
}

// NewMcpServerEntry builds an entry from a raw definition, applying the
// stdio default.
func NewMcpServerEntry(name string, def McpServerDefinition, loc Location, sourceFile string) McpServerEntry {
	t := McpServerType(def.Type)
	switch t {
	case McpTypeHTTP, McpTypeSSE, McpTypeStdio:
	default:
		t = McpTypeStdio
	}
	return McpServerEntry{
		Name:       name,
		Type:       t,
		Location:   loc,
		SourceFile: sourceFile,
		URL:        def.URL,
		Command:    def.Command,
		Args:       def.Args,
	}
}
