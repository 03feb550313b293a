package models

import "strings"

// PermissionType is one of the three permission rule lists in settings.json.
type PermissionType string

const (
	PermissionAllow PermissionType = "allow"
	PermissionAsk   PermissionType = "ask"
	PermissionDeny  PermissionType = "deny"
)

// PermissionRule is a single parsed rule from a settings file's
// permissions object. Rules are never deduplicated: the same string in
// two files yields two rules.
type PermissionRule struct {
	Type       PermissionType `json:"type"`
	Tool       string         `json:"tool"`
	Pattern    string         `json:"pattern"`
	Location   Location       `json:"location"`
	SourceFile string         `json:"sourceFile"`
}

// ParsePermissionRule parses a rule string of the shape "Tool(pattern)",
// "Tool:pattern", or a bare "Tool". It never fails: anything that doesn't
// match a recognized shape is treated as a tool name with pattern "*".
func ParsePermissionRule(raw string, ptype PermissionType, loc Location, sourceFile string) PermissionRule {
	rule := PermissionRule{
		Type:       ptype,
		Tool:       raw,
		Pattern:    "*",
		Location:   loc,
		SourceFile: sourceFile,
	}

	if open := strings.Index(raw, "("); open > 0 && strings.HasSuffix(raw, ")") {
		rule.Tool = raw[:open]
		rule.Pattern = raw[open+1 : len(raw)-1]
		return rule
	}
	if colon := strings.Index(raw, ":"); colon > 0 {
		rule.Tool = raw[:colon]
		rule.Pattern = raw[colon+1:]
		return rule
	}
	return rule
}

// String renders the rule back to its settings.json form.
func (r PermissionRule) String() string {
	if r.Pattern == "*" || r.Pattern == "" {
		return r.Tool
	}
	return r.Tool + "(" + r.Pattern + ")"
}
