// Package settings reads and writes Claude settings.json documents.
//
// Documents are held as raw top-level keys so a read-modify-write cycle
// touches only the keys an operation cares about; everything else is
// preserved byte for byte. Writes always re-serialize the whole document
// in one call with stable 2-space indentation.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

const (
	permissionsKey = "permissions"
	hooksKey       = "hooks"
)

// Document is one settings file held in memory. Exists is false when the
// file was absent on load; Save will create it.
type Document struct {
	Path   string
	Exists bool

	keys map[string]json.RawMessage
}

// Load reads a settings document. A missing file yields an empty document
// with Exists=false and no error; malformed JSON is an error, since a
// mutation against a file we cannot parse cannot be applied safely.
func Load(path string) (*Document, error) {
	doc := &Document{
		Path: path,
		keys: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := json.Unmarshal(data, &doc.keys); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	doc.Exists = true
	return doc, nil
}

// Save serializes the whole document with 2-space indentation and writes
// it in a single call. The new document is fully computed in memory
// before anything touches disk.
func (d *Document) Save() error {
	data, err := json.MarshalIndent(d.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(d.Path), 0755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}
	if err := os.WriteFile(d.Path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	d.Exists = true
	return nil
}

// Permissions decodes the permissions object. A missing or malformed
// permissions key decodes to empty lists.
func (d *Document) Permissions() Permissions {
	var perms Permissions
	raw, ok := d.keys[permissionsKey]
	if !ok {
		return perms
	}
	if err := json.Unmarshal(raw, &perms); err != nil {
		return Permissions{}
	}
	return perms
}

// Permissions mirrors the on-disk permissions object.
type Permissions struct {
	Allow []string `json:"allow,omitempty"`
	Ask   []string `json:"ask,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Rules flattens the three lists into parsed rules.
func (p Permissions) Rules(loc models.Location, sourceFile string) []models.PermissionRule {
	var rules []models.PermissionRule
	for _, raw := range p.Allow {
		rules = append(rules, models.ParsePermissionRule(raw, models.PermissionAllow, loc, sourceFile))
	}
	for _, raw := range p.Ask {
		rules = append(rules, models.ParsePermissionRule(raw, models.PermissionAsk, loc, sourceFile))
	}
	for _, raw := range p.Deny {
		rules = append(rules, models.ParsePermissionRule(raw, models.PermissionDeny, loc, sourceFile))
	}
	return rules
}

// HookMap is the on-disk shape of the hooks key.
type HookMap map[models.HookEventType][]models.HookMatcher

// Hooks decodes the hooks object. Missing or malformed yields an empty
// map. Individual malformed matcher entries (non-object entries, missing
// hooks array) are dropped without discarding the rest of the file.
func (d *Document) Hooks() HookMap {
	raw, ok := d.keys[hooksKey]
	if !ok {
		return HookMap{}
	}

	// Decode event arrays leniently: each matcher entry is kept only if
	// it is an object with a hooks array.
	var loose map[models.HookEventType][]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return HookMap{}
	}

	hooks := make(HookMap, len(loose))
	for event, entries := range loose {
		var matchers []models.HookMatcher
		for _, entry := range entries {
			var m models.HookMatcher
			if err := json.Unmarshal(entry, &m); err != nil {
				continue
			}
			if m.Hooks == nil {
				continue
			}
			matchers = append(matchers, m)
		}
		if len(matchers) > 0 {
			hooks[event] = matchers
		}
	}
	return hooks
}

// HooksStrict decodes the hooks object for a read-modify-write cycle.
// Unlike Hooks, any part of a present hooks key that fails to decode is
// an error: a rewrite built from a partial view would silently destroy
// the entries the lenient reader skips. A missing key is an empty map.
func (d *Document) HooksStrict() (HookMap, error) {
	raw, ok := d.keys[hooksKey]
	if !ok {
		return HookMap{}, nil
	}

	var loose map[models.HookEventType][]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("hooks key in %s is not an event map: %w", d.Path, err)
	}

	hooks := make(HookMap, len(loose))
	for event, entries := range loose {
		matchers := make([]models.HookMatcher, 0, len(entries))
		for i, entry := range entries {
			var m models.HookMatcher
			if err := json.Unmarshal(entry, &m); err != nil {
				return nil, fmt.Errorf("hooks.%s[%d] in %s: %w", event, i, d.Path, err)
			}
			if m.Hooks == nil {
				return nil, fmt.Errorf("hooks.%s[%d] in %s: missing hooks array", event, i, d.Path)
			}
			matchers = append(matchers, m)
		}
		hooks[event] = matchers
	}
	return hooks, nil
}

// SetHooks replaces the hooks key. An empty map removes the key entirely
// so the file never accumulates empty scaffolding.
func (d *Document) SetHooks(hooks HookMap) error {
	if len(hooks) == 0 {
		delete(d.keys, hooksKey)
		return nil
	}
	raw, err := json.Marshal(hooks)
	if err != nil {
		return fmt.Errorf("marshal hooks: %w", err)
	}
	d.keys[hooksKey] = raw
	return nil
}

// Keys returns the top-level key names currently present. Test hook.
func (d *Document) Keys() []string {
	out := make([]string, 0, len(d.keys))
	for k := range d.keys {
		out = append(out, k)
	}
	return out
}
