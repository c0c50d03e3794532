package main

import (
	"errors"
	"flag"

	"mailtmpl/internal/config"
	"mailtmpl/internal/infrastructure/database"
)

func runMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	down := fs.Int("down", 0, "revert the last `N` migrations instead of applying pending ones")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.UseDatabase() {
		return errors.New("DATABASE_URL est requis pour les migrations")
	}
	if *down > 0 {
		return database.RollbackMigrations(cfg.DatabaseURL, cfg.MigrationsPath, *down)
	}
	return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
}
