package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mailtmpl/internal/adapters/web"
	"mailtmpl/internal/application"
	"mailtmpl/internal/config"
	"mailtmpl/internal/infrastructure/database"
	"mailtmpl/internal/infrastructure/filestore"
	"mailtmpl/internal/infrastructure/i18n"
	"mailtmpl/internal/ports/output"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address (overrides HTTP_ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store output.TemplateStore
	if cfg.UseDatabase() {
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				return err
			}
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("erreur lors de l'initialisation de la base de données: %w", err)
		}
		defer pool.Close()
		store = database.NewTemplateRepository(database.NewQueries(pool))
	} else {
		fileStore, err := filestore.New(cfg.TemplatesDir)
		if err != nil {
			return err
		}
		store = fileStore
	}

	editor := application.NewEditorService(store, cfg.SubstitutionOrder)
	translator := i18n.NewTranslator(cfg.DefaultLocale)
	server := web.NewServer(editor, translator)

	if err := server.Start(ctx, cfg.HTTPAddr); err != nil {
		return fmt.Errorf("erreur lors du démarrage du serveur: %w", err)
	}
	if editor.HasUnsavedChanges() {
		log.Println("⚠️ Modifications non enregistrées perdues à l'arrêt.")
	}
	return nil
}
