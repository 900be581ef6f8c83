package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/scanplan/backend/internal/catalog"
)

// runCatalogSeeder creates the catalog reference tables if missing and
// upserts the embedded defaults into them. Safe to re-run.
func runCatalogSeeder(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return fmt.Errorf("database connection not found in context")
	}

	if err := createCatalogTables(db); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}

	cat := catalog.NewStatic()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	products := 0
	for _, name := range cat.Products() {
		spec, _ := cat.Lookup(name)
		if _, err := tx.Exec(`
			INSERT INTO catalog_products (name, pack_size, pack_bottles, case_equivalent_factor)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET
				pack_size = EXCLUDED.pack_size,
				pack_bottles = EXCLUDED.pack_bottles,
				case_equivalent_factor = EXCLUDED.case_equivalent_factor`,
			name, spec.PackSize, spec.PackBottles, spec.CaseEquivalentFactor); err != nil {
			return fmt.Errorf("seed product %q: %w", name, err)
		}
		products++
	}

	markets := 0
	for _, name := range cat.Markets() {
		if _, err := tx.Exec(`
			INSERT INTO catalog_markets (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed market %q: %w", name, err)
		}
		markets++
	}

	accounts := 0
	for _, name := range cat.Accounts() {
		if _, err := tx.Exec(`
			INSERT INTO catalog_accounts (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed account %q: %w", name, err)
		}
		accounts++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Printf("seeded %d products, %d markets, %d accounts", products, markets, accounts)
	return nil
}

func createCatalogTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS catalog_products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			pack_size TEXT NOT NULL,
			pack_bottles INTEGER NOT NULL,
			case_equivalent_factor DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_markets (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_accounts (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
