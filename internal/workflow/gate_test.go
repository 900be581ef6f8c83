package workflow

import (
	"errors"
	"testing"

	"github.com/scanplan/backend/internal/domain"
)

func TestCanEditMatrix(t *testing.T) {
	cases := []struct {
		role   domain.Role
		mode   domain.Mode
		status domain.Status
		want   bool
	}{
		{domain.RoleCommercial, domain.ModeForecast, domain.StatusDraft, true},
		{domain.RoleCommercial, domain.ModeForecast, domain.StatusReview, true},
		{domain.RoleCommercial, domain.ModeForecast, domain.StatusApproved, true},
		{domain.RoleCommercial, domain.ModeBudget, domain.StatusDraft, true},
		{domain.RoleCommercial, domain.ModeBudget, domain.StatusReview, false},
		{domain.RoleCommercial, domain.ModeBudget, domain.StatusApproved, false},
		{domain.RoleFinance, domain.ModeForecast, domain.StatusDraft, false},
		{domain.RoleFinance, domain.ModeForecast, domain.StatusReview, false},
		{domain.RoleFinance, domain.ModeForecast, domain.StatusApproved, false},
		{domain.RoleFinance, domain.ModeBudget, domain.StatusDraft, false},
		{domain.RoleFinance, domain.ModeBudget, domain.StatusReview, false},
		{domain.RoleFinance, domain.ModeBudget, domain.StatusApproved, false},
	}

	for _, c := range cases {
		if got := CanEdit(c.role, c.mode, c.status); got != c.want {
			t.Errorf("CanEdit(%s, %s, %s) = %v; want %v", c.role, c.mode, c.status, got, c.want)
		}
	}
}

func TestPublishFlow(t *testing.T) {
	status, err := Publish(domain.RoleCommercial, domain.ModeForecast, domain.StatusDraft)
	if err != nil {
		t.Fatalf("first publish returned error: %v", err)
	}
	if status != domain.StatusReview {
		t.Fatalf("first publish = %s; want review", status)
	}

	status, err = Publish(domain.RoleFinance, domain.ModeForecast, status)
	if err != nil {
		t.Fatalf("second publish returned error: %v", err)
	}
	if status != domain.StatusApproved {
		t.Fatalf("second publish = %s; want approved", status)
	}

	status, err = Reject(domain.RoleFinance, domain.ModeForecast, status)
	if err != nil {
		t.Fatalf("reject returned error: %v", err)
	}
	if status != domain.StatusDraft {
		t.Fatalf("reject = %s; want draft", status)
	}
}

func TestPublishDenied(t *testing.T) {
	cases := []struct {
		name   string
		role   domain.Role
		mode   domain.Mode
		status domain.Status
	}{
		{"budget mode draft", domain.RoleCommercial, domain.ModeBudget, domain.StatusDraft},
		{"finance from draft", domain.RoleFinance, domain.ModeForecast, domain.StatusDraft},
		{"commercial from review", domain.RoleCommercial, domain.ModeForecast, domain.StatusReview},
		{"already approved", domain.RoleFinance, domain.ModeForecast, domain.StatusApproved},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, err := Publish(c.role, c.mode, c.status)
			var transErr *domain.InvalidTransitionError
			if !errors.As(err, &transErr) {
				t.Fatalf("err = %v; want *InvalidTransitionError", err)
			}
			if status != c.status {
				t.Errorf("status changed to %s on a denied publish", status)
			}
		})
	}
}

func TestRejectDenied(t *testing.T) {
	cases := []struct {
		name   string
		role   domain.Role
		status domain.Status
	}{
		{"commercial cannot reject", domain.RoleCommercial, domain.StatusReview},
		{"cannot reject draft", domain.RoleFinance, domain.StatusDraft},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Reject(c.role, domain.ModeForecast, c.status)
			var transErr *domain.InvalidTransitionError
			if !errors.As(err, &transErr) {
				t.Fatalf("err = %v; want *InvalidTransitionError", err)
			}
		})
	}
}

func TestRejectFromReview(t *testing.T) {
	status, err := Reject(domain.RoleFinance, domain.ModeBudget, domain.StatusReview)
	if err != nil {
		t.Fatalf("reject from review returned error: %v", err)
	}
	if status != domain.StatusDraft {
		t.Fatalf("reject from review = %s; want draft", status)
	}
}
