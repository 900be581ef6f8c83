// internal/service/fixtures.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/scanplan/backend/internal/domain"
)

// FixtureCluster is the JSON shape cmd/seed writes and the server loads
// at boot. Fixtures go through the normal create path, so they get the
// same validation and projection treatment as API traffic.
type FixtureCluster struct {
	Market   string                `json:"market"`
	Account  string                `json:"account"`
	Products []domain.ProductEntry `json:"products"`
}

// LoadFixtures creates clusters from a fixtures file and returns how many
// were loaded. Individual invalid fixtures are skipped with a warning
// rather than aborting the boot.
func (s *PlannerService) LoadFixtures(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []FixtureCluster
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("decode fixtures: %w", err)
	}

	loaded := 0
	for i, fc := range fixtures {
		if _, err := s.CreateCluster(ctx, domain.RoleCommercial, fc.Market, fc.Account, fc.Products); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("fixtures: skipping invalid cluster")
			continue
		}
		loaded++
	}

	log.Info().Int("loaded", loaded).Int("total", len(fixtures)).Str("path", path).Msg("fixtures loaded")
	return loaded, nil
}
