package domain

import "strings"

// Status tracks a cluster through the planning workflow.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReview   Status = "review"
	StatusApproved Status = "approved"
)

// Role identifies who is acting on the planner.
type Role string

const (
	RoleCommercial Role = "commercial"
	RoleFinance    Role = "finance"
)

// Mode is the process-wide planning mode toggle.
type Mode string

const (
	ModeBudget   Mode = "budget"
	ModeForecast Mode = "forecast"
)

var statusLabels = map[Status]string{
	StatusDraft:    "Draft",
	StatusReview:   "In Review",
	StatusApproved: "Approved",
}

// Label returns a human-readable label for a workflow status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return "Draft"
}

// ParseStatus returns the status for a given value (case-insensitive).
func ParseStatus(value string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusLabels[s]

	return s, ok
}

// ParseRole returns the role for a given value (case-insensitive).
func ParseRole(value string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(value))); r {
	case RoleCommercial, RoleFinance:
		return r, true
	default:
		return "", false
	}
}

// ParseMode returns the mode for a given value (case-insensitive).
func ParseMode(value string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case ModeBudget, ModeForecast:
		return m, true
	default:
		return "", false
	}
}
