// Package audit keeps a journal of how the atlas was explored: which views
// were opened and which nodes were picked, by whom.
package audit

import "time"

// Actor identifies the surface an action came from.
type Actor string

const (
	ActorWeb Actor = "web"
	ActorTUI Actor = "tui"
	ActorMCP Actor = "mcp"
	ActorCLI Actor = "cli"
)

// Action describes what was done.
type Action string

const (
	ActionViewChanged Action = "view_changed"
	ActionNodePicked  Action = "node_picked"
	ActionPickFailed  Action = "pick_failed"
)

// Entry is a single journal record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     Actor     `json:"actor"`
	Action    Action    `json:"action"`
	View      string    `json:"view"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
