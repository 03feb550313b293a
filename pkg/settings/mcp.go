package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

// McpConfig mirrors an .mcp.json document.
type McpConfig struct {
	Servers map[string]models.McpServerDefinition `json:"mcpServers"`
}

// LoadMcpConfig reads a server map document. A missing file yields an
// empty config and no error; malformed JSON is an error so discovery can
// log and skip the file.
func LoadMcpConfig(path string) (McpConfig, error) {
	var cfg McpConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read mcp config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return McpConfig{}, fmt.Errorf("parse mcp config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadMcpServerFile reads a loose single-server definition file from an
// mcp-servers directory.
func LoadMcpServerFile(path string) (models.McpServerDefinition, error) {
	var def models.McpServerDefinition
	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read mcp server file: %w", err)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return models.McpServerDefinition{}, fmt.Errorf("parse mcp server file %s: %w", path, err)
	}
	return def, nil
}
