package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/semaphore"

	"github.com/scanplan/backend/internal/config"
)

// DB wraps the catalog reference database connection pool.
type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates a new database connection pool
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", connStr)
		if err != nil {
			return
		}

		// Configure connection pool
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		dbInstance = &DB{
			DB:  db,
			sem: semaphore.NewWeighted(5), // catalog loads are boot-time only
		}
	})

	return dbInstance, err
}

type productRow struct {
	Name                 string  `db:"name"`
	PackSize             string  `db:"pack_size"`
	PackBottles          int     `db:"pack_bottles"`
	CaseEquivalentFactor float64 `db:"case_equivalent_factor"`
}

// LoadCatalog reads the reference tables into an in-memory catalog. It is
// called once at boot; the catalog is immutable afterwards.
func LoadCatalog(ctx context.Context, db *DB) (*Catalog, error) {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	var rows []productRow
	if err := db.SelectContext(ctx, &rows,
		`SELECT name, pack_size, pack_bottles, case_equivalent_factor FROM catalog_products`); err != nil {
		return nil, fmt.Errorf("load catalog products: %w", err)
	}

	products := make(map[string]PackSpec, len(rows))
	for _, r := range rows {
		products[r.Name] = PackSpec{
			PackSize:             r.PackSize,
			PackBottles:          r.PackBottles,
			CaseEquivalentFactor: r.CaseEquivalentFactor,
		}
	}

	var markets []string
	if err := db.SelectContext(ctx, &markets,
		`SELECT name FROM catalog_markets ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load catalog markets: %w", err)
	}

	var accounts []string
	if err := db.SelectContext(ctx, &accounts,
		`SELECT name FROM catalog_accounts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load catalog accounts: %w", err)
	}

	return New(products, markets, accounts), nil
}
