// Package nav encodes the navigation state that rides along button values and
// modal private metadata. Slack keeps no view history, so every hop carries
// what the next render needs.
package nav

import (
	"encoding/json"
	"strings"
)

type Origin string

const (
	OriginHome        Origin = "home"
	OriginPeople      Origin = "people"
	OriginPinned      Origin = "pinned"
	OriginPersonTasks Origin = "person_tasks"
	OriginTaskUpdates Origin = "task_updates"
)

func (o Origin) valid() bool {
	switch o {
	case OriginHome, OriginPeople, OriginPinned, OriginPersonTasks, OriginTaskUpdates:
		return true
	}
	return false
}

// ButtonValue is a target id tagged with the view that rendered the button.
type ButtonValue struct {
	TargetID string
	Origin   Origin
}

// Encode renders "<id>:<origin>", or the bare id when no origin is set.
func (b ButtonValue) Encode() string {
	if b.Origin == "" {
		return b.TargetID
	}
	return b.TargetID + ":" + string(b.Origin)
}

// ParseButtonValue never fails: a value without a known origin suffix is
// taken whole as the target id.
func ParseButtonValue(raw string) ButtonValue {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return ButtonValue{TargetID: raw}
	}

	origin := Origin(raw[i+1:])
	if !origin.valid() {
		return ButtonValue{TargetID: raw}
	}

	return ButtonValue{TargetID: raw[:i], Origin: origin}
}

// MenuChoice is one option of a row's overflow menu: the action it stands for
// and the value a button for that action would have carried.
type MenuChoice struct {
	ActionID string
	Value    string
}

// Encode renders "<action>|<value>".
func (m MenuChoice) Encode() string {
	return m.ActionID + "|" + m.Value
}

// ParseMenuChoice returns the zero choice when raw has no action part.
func ParseMenuChoice(raw string) MenuChoice {
	action, value, ok := strings.Cut(raw, "|")
	if !ok || action == "" {
		return MenuChoice{}
	}
	return MenuChoice{ActionID: action, Value: value}
}

// Metadata is the private state of a modal: the row it is about and, in the
// multi-tenant configuration, the tenant it belongs to.
type Metadata struct {
	TargetID string `json:"target_id"`
	TenantID string `json:"tenant_id,omitempty"`
}

// Encode returns the bare target id for single-tenant metadata and a JSON
// object otherwise.
func (m Metadata) Encode() string {
	if m.TenantID == "" {
		return m.TargetID
	}

	b, err := json.Marshal(m)
	if err != nil {
		return m.TargetID
	}

	return string(b)
}

// ParseMetadata falls back to treating the raw string as the target id when it
// is not a JSON object carrying one.
func ParseMetadata(raw string) Metadata {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var m Metadata
		if err := json.Unmarshal([]byte(trimmed), &m); err == nil && m.TargetID != "" {
			return m
		}
	}

	return Metadata{TargetID: raw}
}

// Context is the one-level navigation state of a modal: the view shown now,
// and the view plus row to go back to.
type Context struct {
	Current  Origin
	Origin   Origin
	OriginID string
}

// CanGoBack reports whether a back control should be rendered.
func (c Context) CanGoBack() bool {
	return c.Origin == OriginPersonTasks && c.OriginID != ""
}
