package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed catalog reference data and generate planner fixtures",
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "Seed catalog reference tables (products, markets, accounts)",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runCatalogSeeder,
			},
			{
				Name:  "fixtures",
				Usage: "Generate synthetic planner cluster fixtures as JSON",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "clusters",
						Usage: "Number of clusters to generate",
						Value: 8,
					},
					&cli.Int64Flag{
						Name:    "seed",
						Usage:   "Random seed for reproducible fixtures",
						Value:   1,
						EnvVars: []string{"PLANNER_RANDOM_SEED"},
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file path",
						Value: "./data/fixtures/clusters.json",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Calendar year to schedule scan weeks in",
						Value: 2026,
					},
				},
				Action: runFixtureGenerator,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
