package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"mathboard/internal/config"
	"mathboard/internal/repository/postgres"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating the schema (fresh start)")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	log.Printf("Setting up schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Operations),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Discussions),
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	// starting_number carries a UNIQUE index: root-value uniqueness is
	// enforced here, atomically with the insert, never by a read-then-write
	// check in application code.
	createDiscussions := `
		CREATE TABLE IF NOT EXISTS ` + tables.Discussions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			author_id UUID NOT NULL,
			starting_number DOUBLE PRECISION NOT NULL UNIQUE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDiscussions); err != nil {
		return err
	}

	createOperations := `
		CREATE TABLE IF NOT EXISTS ` + tables.Operations + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			discussion_id UUID NOT NULL REFERENCES ` + tables.Discussions + `(id) ON DELETE CASCADE,
			parent_id UUID REFERENCES ` + tables.Operations + `(id) ON DELETE CASCADE,
			operation_type TEXT NOT NULL,
			operand DOUBLE PRECISION NOT NULL,
			result DOUBLE PRECISION NOT NULL,
			author_id UUID NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createOperations); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `operations_discussion_created ON ` + tables.Operations + `(discussion_id, created_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `operations_parent ON ` + tables.Operations + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `discussions_created ON ` + tables.Discussions + `(created_at)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}
