package appointment

import (
	"errors"
	"testing"
)

func TestNormalizeStatusKnownValues(t *testing.T) {
	cases := map[string]Status{
		"Pending":     StatusPending,
		"Confirmed":   StatusConfirmed,
		"In Progress": StatusInProgress,
		"Completed":   StatusCompleted,
		"Cancelled":   StatusCancelled,
	}

	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeStatusUnknownPassesThrough(t *testing.T) {
	if got := NormalizeStatus("No Show"); got != Status("no_show") {
		t.Errorf("NormalizeStatus(No Show) = %q, want no_show", got)
	}
	if got := NormalizeStatus(""); got != Status("") {
		t.Errorf("NormalizeStatus(empty) = %q, want empty", got)
	}
}

func TestBackendValueRoundTrip(t *testing.T) {
	// "In Progress" has no outbound transition, so only the four
	// actionable statuses need an unambiguous inverse.
	for _, raw := range []string{"Pending", "Confirmed", "Completed", "Cancelled"} {
		if got := NormalizeStatus(raw).BackendValue(); got != raw {
			t.Errorf("round trip of %q produced %q", raw, got)
		}
	}
}

func TestNextStatusLegalTransitions(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
	}{
		{StatusPending, ActionConfirm, StatusConfirmed},
		{StatusPending, ActionCancel, StatusCancelled},
		{StatusConfirmed, ActionComplete, StatusCompleted},
		{StatusConfirmed, ActionCancel, StatusCancelled},
		{StatusCompleted, ActionReopen, StatusConfirmed},
		{StatusCancelled, ActionReschedule, StatusConfirmed},
	}

	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.action)
		if err != nil {
			t.Errorf("NextStatus(%s, %s): unexpected error %v", tc.from, tc.action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NextStatus(%s, %s) = %s, want %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestNextStatusRejectsIllegalActions(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
	}{
		{StatusPending, ActionComplete},
		{StatusPending, ActionReopen},
		{StatusConfirmed, ActionConfirm},
		{StatusCompleted, ActionCancel},
		{StatusCancelled, ActionConfirm},
		{StatusInProgress, ActionComplete},
		{StatusInProgress, ActionCancel},
	}

	for _, tc := range cases {
		_, err := NextStatus(tc.from, tc.action)

		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Errorf("NextStatus(%s, %s): want InvalidTransitionError, got %v", tc.from, tc.action, err)
			continue
		}
		if invalid.From != tc.from || invalid.Action != tc.action {
			t.Errorf("error fields = (%s, %s), want (%s, %s)", invalid.From, invalid.Action, tc.from, tc.action)
		}
	}
}

func TestAllowedActions(t *testing.T) {
	if got := AllowedActions(StatusInProgress); len(got) != 0 {
		t.Errorf("in_progress should expose no actions, got %v", got)
	}

	got := AllowedActions(StatusPending)
	if len(got) != 2 {
		t.Fatalf("pending should expose 2 actions, got %v", got)
	}
	if got[0] != ActionConfirm || got[1] != ActionCancel {
		t.Errorf("pending actions = %v, want [confirm cancel]", got)
	}
}
