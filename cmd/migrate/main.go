package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
)

const defaultMigrationsDir = "./migrations"

var openDBFunc = func(dbURL string) (*sql.DB, error) {
	return sql.Open("postgres", dbURL)
}

func main() {
	_ = godotenv.Load()
	defer logger.Sync()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.L().Fatal("migrate failed", zap.Error(err))
	}
}

func newRootCmd() *cobra.Command {
	var migrationsDir string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "manage the storefront database schema and catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", defaultMigrationsDir, "directory holding *.sql migrations")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "apply every migration not yet recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				return run(db, "up", migrationsDir)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "roll back the most recently applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				return run(db, "down", migrationsDir)
			})
		},
	})

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed --file=<catalog.yaml>",
		Short: "upsert catalog products by slug from a YAML list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadCatalog(seedFile)
			if err != nil {
				return err
			}
			return withDB(func(db *sql.DB) error {
				_, err := seedCatalog(cmd.Context(), db, inputs)
				return err
			})
		},
	}
	seedCmd.Flags().StringVar(&seedFile, "file", "catalog.yaml", "catalog YAML file")
	root.AddCommand(seedCmd)

	return root
}

func withDB(fn func(db *sql.DB) error) error {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return errors.New("DB_URL not set in environment")
	}

	db, err := openDBFunc(dbURL)
	if err != nil {
		return errors.Wrap(err, "failed to connect db")
	}
	defer db.Close()

	return fn(db)
}

func run(db *sql.DB, mode, migrationsDir string) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return errors.Wrap(err, "failed to ensure schema_migrations table")
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return errors.Wrap(err, "failed to read migrations")
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return runMigrationsUp(db, files)
	case "down":
		return runMigrationsDown(db, files)
	default:
		return errors.Newf("unknown mode: %s (use 'up' or 'down')", mode)
	}
}

func runMigrationsUp(db *sql.DB, files []string) error {
	log := logger.L().With(zap.String("command", "up"))

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return errors.Wrap(err, "failed to check migration status")
		}
		if exists {
			log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", file)
		}

		log.Info("applying migration", zap.String("version", version))
		if _, err := db.Exec(extractMigrationPart(string(content), "Up")); err != nil {
			return errors.Wrapf(err, "migration failed (%s)", version)
		}

		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return errors.Wrap(err, "failed to record migration version")
		}
		applied++
	}

	log.Info("migrations up to date", zap.Int("applied", applied))
	return nil
}

func runMigrationsDown(db *sql.DB, files []string) error {
	log := logger.L().With(zap.String("command", "down"))

	var lastVersion string
	err := db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&lastVersion)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("no migrations to roll back")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to get last applied migration")
	}

	filePath := ""
	for _, f := range files {
		if filepath.Base(f) == lastVersion {
			filePath = f
			break
		}
	}
	if filePath == "" {
		return errors.Newf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", filePath)
	}

	log.Info("rolling back migration", zap.String("version", lastVersion))
	if _, err := db.Exec(extractMigrationPart(string(content), "Down")); err != nil {
		return errors.Wrapf(err, "rollback failed (%s)", filePath)
	}

	if _, err := db.Exec(`DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
		return errors.Wrap(err, "failed to remove migration record")
	}
	return nil
}

// extractMigrationPart returns the lines between "-- +migrate <section>" and
// the next marker.
func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "-- +migrate "+section) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}

func loadCatalog(path string) ([]product.SeedInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var inputs []product.SeedInput
	if err := yaml.Unmarshal(raw, &inputs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return inputs, nil
}

// seedCatalog upserts the whole catalog in one transaction.
func seedCatalog(ctx context.Context, db *sql.DB, inputs []product.SeedInput) ([]*product.Product, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin seed transaction")
	}
	defer func() { _ = tx.Rollback() }()

	saved, err := product.NewService(product.NewRepository(tx)).Seed(ctx, inputs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit seed transaction")
	}
	return saved, nil
}
