package service

import (
	"context"
	"errors"
	"testing"

	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/projection"
	"github.com/scanplan/backend/internal/store"
	"github.com/scanplan/backend/internal/synthetic"
)

// recordingCache counts cache traffic so tests can observe the
// invalidate-on-mutate contract.
type recordingCache struct {
	rows        []domain.SummaryRow
	hits        int
	sets        int
	invalidates int
}

func (c *recordingCache) Get(ctx context.Context) ([]domain.SummaryRow, bool, error) {
	if c.rows == nil {
		return nil, false, nil
	}
	c.hits++
	return c.rows, true, nil
}

func (c *recordingCache) Set(ctx context.Context, rows []domain.SummaryRow) error {
	c.sets++
	c.rows = rows
	return nil
}

func (c *recordingCache) Invalidate(ctx context.Context) error {
	c.invalidates++
	c.rows = nil
	return nil
}

func newTestService(mode domain.Mode, cache *recordingCache) *PlannerService {
	cat := catalog.NewStatic()
	st := store.New(projection.NewEngine(cat), synthetic.New(1))
	if cache == nil {
		return NewPlannerService(st, nil, mode)
	}
	return NewPlannerService(st, cache, mode)
}

func validProducts() []domain.ProductEntry {
	return []domain.ProductEntry{{
		Product:    "William Grant - Glenfiddich 12yr",
		GrowthRate: 0.05,
		Scans:      []domain.ScanEvent{{Week: "2026-03-02", ScanAmount: 2}},
	}}
}

func TestModeSwitch(t *testing.T) {
	s := newTestService(domain.ModeBudget, nil)
	if s.Mode() != domain.ModeBudget {
		t.Fatalf("mode = %s; want budget", s.Mode())
	}
	s.SetMode(domain.ModeForecast)
	if s.Mode() != domain.ModeForecast {
		t.Fatalf("mode = %s; want forecast", s.Mode())
	}
}

func TestFinanceCannotCreate(t *testing.T) {
	s := newTestService(domain.ModeForecast, nil)

	_, err := s.CreateCluster(context.Background(), domain.RoleFinance, "New York", "BevMax", validProducts())
	var transErr *domain.InvalidTransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("err = %v; want *InvalidTransitionError", err)
	}
	if len(s.Clusters()) != 0 {
		t.Fatal("cluster stored despite denied create")
	}
}

func TestBudgetModeLocksNonDrafts(t *testing.T) {
	ctx := context.Background()
	s := newTestService(domain.ModeForecast, nil)

	c, err := s.CreateCluster(ctx, domain.RoleCommercial, "New York", "BevMax", validProducts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Publish(ctx, domain.RoleCommercial, c.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// review cluster is still editable in forecast mode
	if _, err := s.AddScan(ctx, domain.RoleCommercial, c.ID, validProducts()[0].Product,
		domain.ScanEvent{Week: "2026-04-06", ScanAmount: 1}); err != nil {
		t.Fatalf("forecast-mode edit of review cluster: %v", err)
	}

	// but locked once the session drops back to budget mode
	s.SetMode(domain.ModeBudget)
	_, err = s.AddScan(ctx, domain.RoleCommercial, c.ID, validProducts()[0].Product,
		domain.ScanEvent{Week: "2026-05-04", ScanAmount: 1})
	var transErr *domain.InvalidTransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("err = %v; want *InvalidTransitionError", err)
	}
}

func TestPublishLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestService(domain.ModeForecast, nil)

	c, err := s.CreateCluster(ctx, domain.RoleCommercial, "New York", "BevMax", validProducts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, err = s.Publish(ctx, domain.RoleCommercial, c.ID)
	if err != nil || c.Status != domain.StatusReview {
		t.Fatalf("first publish = (%s, %v); want review", c.Status, err)
	}

	// commercial may not approve
	if _, err := s.Publish(ctx, domain.RoleCommercial, c.ID); err == nil {
		t.Fatal("commercial approved a review cluster")
	}

	c, err = s.Publish(ctx, domain.RoleFinance, c.ID)
	if err != nil || c.Status != domain.StatusApproved {
		t.Fatalf("second publish = (%s, %v); want approved", c.Status, err)
	}

	c, err = s.Reject(ctx, domain.RoleFinance, c.ID)
	if err != nil || c.Status != domain.StatusDraft {
		t.Fatalf("reject = (%s, %v); want draft", c.Status, err)
	}
	for _, row := range s.Rows() {
		if row.Status != domain.StatusDraft {
			t.Fatalf("row %s status = %s after reject; want draft", row.ID, row.Status)
		}
	}
}

func TestBudgetModePublishDenied(t *testing.T) {
	ctx := context.Background()
	s := newTestService(domain.ModeForecast, nil)

	c, err := s.CreateCluster(ctx, domain.RoleCommercial, "New York", "BevMax", validProducts())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s.SetMode(domain.ModeBudget)
	_, err = s.Publish(ctx, domain.RoleCommercial, c.ID)
	var transErr *domain.InvalidTransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("err = %v; want *InvalidTransitionError", err)
	}
}

func TestSummaryCaching(t *testing.T) {
	ctx := context.Background()
	cache := &recordingCache{}
	s := newTestService(domain.ModeForecast, cache)

	if _, err := s.CreateCluster(ctx, domain.RoleCommercial, "New York", "BevMax", validProducts()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.invalidates != 1 {
		t.Fatalf("invalidates after create = %d; want 1", cache.invalidates)
	}

	// first read computes and fills the cache, second is a hit
	first, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("sets after first read = %d; want 1", cache.sets)
	}
	if _, err := s.Summary(ctx); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("hits after second read = %d; want 1", cache.hits)
	}

	if len(first) != 1 || first[0].Brand != "Glenfiddich" {
		t.Fatalf("unexpected rollup: %+v", first)
	}

	// a mutation invalidates, so the next read recomputes
	if _, err := s.CreateCluster(ctx, domain.RoleCommercial, "New Jersey", "Wegmans", validProducts()); err != nil {
		t.Fatalf("create: %v", err)
	}
	again, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("rollups after second cluster = %d; want 2", len(again))
	}
}

func TestCanEditTracksMode(t *testing.T) {
	s := newTestService(domain.ModeForecast, nil)

	if !s.CanEdit(domain.RoleCommercial, domain.StatusReview) {
		t.Fatal("commercial should edit review clusters in forecast mode")
	}
	s.SetMode(domain.ModeBudget)
	if s.CanEdit(domain.RoleCommercial, domain.StatusReview) {
		t.Fatal("commercial should not edit review clusters in budget mode")
	}
}
