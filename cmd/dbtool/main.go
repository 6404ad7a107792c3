// Command dbtool checks database connectivity and applies or reverts the
// embedded schema migrations.
//
//	dbtool check   connect, print the current database and the migration version
//	dbtool up      apply pending migrations
//	dbtool down    revert the most recent migration
package main

import (
	"context"
	"fmt"
	"os"

	"grocery-detective/internal/config"
	"grocery-detective/internal/database"

	"github.com/jackc/pgx/v5"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: dbtool check|up|down")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string) error {
	dbCfg, logCfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(logCfg)
	connString := dbCfg.ConnectionString()

	switch command {
	case "check":
		return check(context.Background(), connString)
	case "up":
		return database.Migrate(connString, logger)
	case "down":
		if err := database.Rollback(connString); err != nil {
			return err
		}
		logger.Info().Msg("rolled back one migration")
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func check(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return fmt.Errorf("query current database: %w", err)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	rows, err := conn.Query(ctx, "SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname")
	if err != nil {
		return fmt.Errorf("list databases: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("scan databases: %w", err)
	}

	fmt.Println("\nAvailable databases:")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}

	version, dirty, err := database.Version(connString)
	if err != nil {
		return err
	}
	fmt.Printf("\nSchema version: %d (dirty: %t)\n", version, dirty)

	return nil
}
