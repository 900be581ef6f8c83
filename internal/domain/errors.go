package domain

import (
	"errors"
	"fmt"
)

// ErrClusterNotFound is returned for operations against an unknown cluster id.
var ErrClusterNotFound = errors.New("cluster not found")

// ValidationError rejects a cluster create/replace before anything mutates:
// a missing market or account, or a product with no scheduled scans.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cluster: %s %s", e.Field, e.Reason)
}

// InvalidDateError flags a scan week string that does not parse. Rows with
// this problem are excluded from materialization, never fatal to the batch.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid week date %q", e.Value)
}

// InvalidTransitionError rejects a workflow action outside its allowed
// (role, mode, status) combination.
type InvalidTransitionError struct {
	Action string
	From   Status
	Mode   Mode
	Role   Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s (role=%s mode=%s)", e.Action, e.From, e.Role, e.Mode)
}

// DuplicateScanWeekError rejects a second scan for the same (product, week)
// pair within a cluster.
type DuplicateScanWeekError struct {
	Product string
	Week    string
}

func (e *DuplicateScanWeekError) Error() string {
	return fmt.Sprintf("scan already scheduled for %s on %s", e.Product, e.Week)
}
