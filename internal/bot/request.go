package bot

import (
	"github.com/slack-go/slack"

	"github.com/monocle-dev/taskhome/internal/nav"
	"github.com/monocle-dev/taskhome/internal/types"
)

// Request is one inbound action or form submission, reduced to what the
// handlers read.
type Request struct {
	ActionID       string // action id, or the modal callback id of a submission
	Value          string
	UserID         string
	TenantID       string
	TriggerID      string
	ViewID         string
	ViewCallbackID string
	Metadata       string // private metadata of the view the action came from
	InModal        bool
	Submission     bool
	Values         map[string]map[string]string
}

// Input returns a submitted input value by block and action id.
func (r Request) Input(blockID, actionID string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[blockID][actionID]
}

// RequestsFromInteraction turns an interaction payload into requests, one per
// block action, or a single request for a view submission. An overflow menu
// choice is unwrapped into the action it stands for.
func RequestsFromInteraction(cb slack.InteractionCallback) []Request {
	base := Request{
		UserID:         cb.User.ID,
		TenantID:       cb.Team.ID,
		TriggerID:      cb.TriggerID,
		ViewID:         cb.View.ID,
		ViewCallbackID: cb.View.CallbackID,
		Metadata:       cb.View.PrivateMetadata,
		InModal:        cb.View.Type == slack.VTModal,
	}

	switch cb.Type {
	case slack.InteractionTypeViewSubmission:
		req := base
		req.ActionID = cb.View.CallbackID
		req.Submission = true
		req.Values = map[string]map[string]string{}
		if cb.View.State != nil {
			for blockID, actions := range cb.View.State.Values {
				req.Values[blockID] = map[string]string{}
				for actionID, action := range actions {
					req.Values[blockID][actionID] = action.Value
				}
			}
		}
		return []Request{req}

	case slack.InteractionTypeBlockActions:
		var reqs []Request
		for _, action := range cb.ActionCallback.BlockActions {
			req := base
			req.ActionID = action.ActionID
			req.Value = action.Value
			if action.ActionID == types.ActionPersonMenu {
				choice := nav.ParseMenuChoice(action.SelectedOption.Value)
				req.ActionID, req.Value = choice.ActionID, choice.Value
			}
			reqs = append(reqs, req)
		}
		return reqs
	}

	return nil
}
