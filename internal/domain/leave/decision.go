package leave

import "strings"

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", ErrInvalidAction
	}
}

func (a Action) Target() Status {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	default:
		return ""
	}
}

// Transition applies action to a request in state current. The state is
// checked before the action so a decided request always reports the
// conflict.
func Transition(current Status, action string) (Status, error) {
	if current.Terminal() {
		return "", &ConflictError{Status: current}
	}
	a, err := ParseAction(strings.TrimSpace(action))
	if err != nil {
		return "", err
	}
	return a.Target(), nil
}

// SuccessMessage is the confirmation for a completed decision.
func SuccessMessage(status Status) string {
	return "Leave request " + status.Lower() + " successfully."
}
