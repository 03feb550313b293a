package models

// HookEventType is the lifecycle event a hook configuration is keyed by.
type HookEventType string

const (
	HookSessionStart     HookEventType = "SessionStart"
	HookUserPromptSubmit HookEventType = "UserPromptSubmit"
	HookPreToolUse       HookEventType = "PreToolUse"
	HookPostToolUse      HookEventType = "PostToolUse"
	HookNotification     HookEventType = "Notification"
	HookStop             HookEventType = "Stop"
	HookSubagentStop     HookEventType = "SubagentStop"
	HookPreCompact       HookEventType = "PreCompact"
)

// AllHookEventTypes returns the known event types in display order.
func AllHookEventTypes() []HookEventType {
	return []HookEventType{
		HookSessionStart,
		HookUserPromptSubmit,
		HookPreToolUse,
		HookPostToolUse,
		HookNotification,
		HookStop,
		HookSubagentStop,
		HookPreCompact,
	}
}

// DefaultHookTimeout is the timeout in seconds applied when a hook
// declares none.
const DefaultHookTimeout = 60

// Hook is a single command or prompt executed when its matcher fires.
// Command and Prompt are mutually exclusive by Type.
type Hook struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
}

// HookMatcher pairs an optional tool-name filter with an ordered hook
// list. An absent or empty matcher matches every tool.
type HookMatcher struct {
	Matcher string `json:"matcher,omitempty"`
	Hooks   []Hook `json:"hooks"`
}

// HookConfiguration is the set of matchers for one event type in one
// settings file. A single hook's identity for mutation purposes is
// (SourceFile, EventType, matcher index, hook index) - positional, so
// indices from a stale view must be re-resolved against fresh file
// content before any mutation.
type HookConfiguration struct {
	EventType  HookEventType `json:"eventType"`
	Matchers   []HookMatcher `json:"matchers"`
	Location   Location      `json:"location"`
	SourceFile string        `json:"sourceFile"`
}
