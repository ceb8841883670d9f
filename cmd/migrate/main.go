package main

import (
	"dashboard/internal/config"
	"dashboard/internal/db"
	"fmt"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := db.ApplyMigrations(cfg.PostgresqlURL, cfg.MigrationsPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied.")
}
