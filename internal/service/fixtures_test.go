package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/scanplan/backend/internal/domain"
)

func writeFixtures(t *testing.T, fixtures []FixtureCluster) string {
	t.Helper()

	data, err := json.Marshal(fixtures)
	if err != nil {
		t.Fatalf("marshal fixtures: %v", err)
	}
	path := filepath.Join(t.TempDir(), "clusters.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	return path
}

func TestLoadFixtures(t *testing.T) {
	s := newTestService(domain.ModeBudget, nil)

	path := writeFixtures(t, []FixtureCluster{
		{Market: "New York", Account: "BevMax", Products: validProducts()},
		{Market: "Connecticut", Account: "Wegmans", Products: validProducts()},
	})

	loaded, err := s.LoadFixtures(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFixtures returned error: %v", err)
	}
	if loaded != 2 {
		t.Fatalf("loaded = %d; want 2", loaded)
	}
	if got := len(s.Clusters()); got != 2 {
		t.Fatalf("store holds %d clusters; want 2", got)
	}
	for _, c := range s.Clusters() {
		if len(c.Products[0].Trend) != 12 {
			t.Fatal("fixture cluster missing generated trend")
		}
	}
}

func TestLoadFixturesSkipsInvalid(t *testing.T) {
	s := newTestService(domain.ModeBudget, nil)

	path := writeFixtures(t, []FixtureCluster{
		{Market: "", Account: "BevMax", Products: validProducts()}, // invalid
		{Market: "New York", Account: "BevMax", Products: validProducts()},
	})

	loaded, err := s.LoadFixtures(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFixtures returned error: %v", err)
	}
	if loaded != 1 {
		t.Fatalf("loaded = %d; want 1 (invalid fixture skipped)", loaded)
	}
}

func TestLoadFixturesMissingFile(t *testing.T) {
	s := newTestService(domain.ModeBudget, nil)
	if _, err := s.LoadFixtures(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing fixtures file")
	}
}
