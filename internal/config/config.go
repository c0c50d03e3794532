package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"mailtmpl/internal/domain/entities"
)

type Config struct {
	HTTPAddr          string
	DatabaseURL       string // empty: templates are stored in TemplatesDir
	TemplatesDir      string
	MigrationsPath    string
	AutoMigrate       bool
	DefaultLocale     string
	SubstitutionOrder entities.SubstitutionOrder
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TemplatesDir:   getenv("TEMPLATES_DIR", "./templates"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "migrations"),
		AutoMigrate:    strings.EqualFold(os.Getenv("AUTO_MIGRATE"), "true"),
		DefaultLocale:  getenv("DEFAULT_LOCALE", "fr"),
	}

	order, err := entities.ParseSubstitutionOrder(os.Getenv("SUBSTITUTION_ORDER"))
	if err != nil {
		return nil, fmt.Errorf("config: SUBSTITUTION_ORDER invalide: %w", err)
	}
	cfg.SubstitutionOrder = order

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// UseDatabase reports whether templates are stored in PostgreSQL.
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE invalide (%q): %w", c.DefaultLocale, err)
	}

	if !strings.Contains(c.HTTPAddr, ":") {
		return fmt.Errorf("config: HTTP_ADDR invalide (%q): attendu host:port ou :port", c.HTTPAddr)
	}

	if !c.UseDatabase() {
		return nil
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	return nil
}
