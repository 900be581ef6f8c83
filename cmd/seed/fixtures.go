package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/service"
)

// runFixtureGenerator writes a JSON file of synthetic clusters the server
// can load at boot via PLANNER_FIXTURES. Fixtures carry only the inputs
// (market, account, products, scan weeks and amounts); trends and derived
// metrics are filled in by the normal create path.
func runFixtureGenerator(c *cli.Context) error {
	count := c.Int("clusters")
	seed := c.Int64("seed")
	outPath := c.String("out")
	year := c.Int("year")

	cat := catalog.NewStatic()
	rng := rand.New(rand.NewSource(seed))

	fixtures := generateFixtures(cat, rng, count, year)

	data, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write fixtures: %w", err)
	}

	log.Printf("wrote %d clusters to %s", len(fixtures), outPath)
	return nil
}

func generateFixtures(cat *catalog.Catalog, rng *rand.Rand, count, year int) []service.FixtureCluster {
	markets := cat.Markets()
	accounts := cat.Accounts()
	products := cat.Products()
	weeks := catalog.Weeks(year)

	fixtures := make([]service.FixtureCluster, 0, count)
	for i := 0; i < count; i++ {
		nProducts := 1 + rng.Intn(3)
		entries := make([]domain.ProductEntry, 0, nProducts)
		used := map[string]bool{}

		for len(entries) < nProducts {
			product := products[rng.Intn(len(products))]
			if used[product] {
				continue
			}
			used[product] = true

			nScans := 1 + rng.Intn(3)
			scans := make([]domain.ScanEvent, 0, nScans)
			seen := map[string]bool{}
			for len(scans) < nScans {
				week := weeks[rng.Intn(len(weeks))].Format(domain.WeekLayout)
				if seen[week] {
					continue
				}
				seen[week] = true
				scans = append(scans, domain.ScanEvent{
					Week:       week,
					ScanAmount: float64(1+rng.Intn(8)) * 0.5,
				})
			}

			entries = append(entries, domain.ProductEntry{
				Product:    product,
				GrowthRate: float64(rng.Intn(15)-2) / 100, // -2% to +12%
				Scans:      scans,
			})
		}

		fixtures = append(fixtures, service.FixtureCluster{
			Market:   markets[rng.Intn(len(markets))],
			Account:  accounts[rng.Intn(len(accounts))],
			Products: entries,
		})
	}
	return fixtures
}
