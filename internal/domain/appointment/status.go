package appointment

import (
	"fmt"
	"strings"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

var fromBackend = map[string]Status{
	"Pending":     StatusPending,
	"Confirmed":   StatusConfirmed,
	"In Progress": StatusInProgress,
	"Completed":   StatusCompleted,
	"Cancelled":   StatusCancelled,
}

var toBackend = map[Status]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

// NormalizeStatus maps a backend status string onto the internal enum.
// Unknown strings never fail: they degrade to a lower-cased,
// underscored pass-through.
func NormalizeStatus(raw string) Status {
	if s, ok := fromBackend[raw]; ok {
		return s
	}
	return Status(strings.ReplaceAll(strings.ToLower(raw), " ", "_"))
}

// BackendValue is the inverse of NormalizeStatus for the known set.
func (s Status) BackendValue() string {
	if v, ok := toBackend[s]; ok {
		return v
	}
	return string(s)
}

// ===============================
// Status Transitions
// ===============================

type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"
	ActionComplete   Action = "complete"
	ActionReopen     Action = "reopen"
	ActionReschedule Action = "reschedule"
)

// transitions is the single source of truth for legal status changes.
// in_progress has no outbound actions.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionConfirm: StatusConfirmed,
		ActionCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		ActionComplete: StatusCompleted,
		ActionCancel:   StatusCancelled,
	},
	StatusCompleted: {
		ActionReopen: StatusConfirmed,
	},
	StatusCancelled: {
		ActionReschedule: StatusConfirmed,
	},
}

type InvalidTransitionError struct {
	From   Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed for status %q", e.Action, e.From)
}

// NextStatus validates an action against the transition table and
// returns the resulting status. Validation happens before any network
// call so illegal actions fail fast locally.
func NextStatus(current Status, action Action) (Status, error) {
	if next, ok := transitions[current][action]; ok {
		return next, nil
	}
	return "", &InvalidTransitionError{From: current, Action: action}
}

// AllowedActions lists the actions the UI may offer for a status.
func AllowedActions(current Status) []Action {
	order := []Action{ActionConfirm, ActionComplete, ActionReopen, ActionReschedule, ActionCancel}

	var out []Action
	for _, a := range order {
		if _, ok := transitions[current][a]; ok {
			out = append(out, a)
		}
	}
	return out
}
