package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/envutil"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type Service struct {
	db      *gorm.DB
	log     *logger.Logger
	dialect string
}

// New connects to Postgres, or to a local SQLite file when DB_DRIVER=sqlite
// is set for development.
func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	dialect := strings.ToLower(envutil.GetEnv("DB_DRIVER", "postgres", logg))
	var (
		handle *gorm.DB
		err    error
	)
	switch dialect {
	case "sqlite":
		path := envutil.GetEnv("SQLITE_PATH", "commerce.db", logg)
		handle, err = gorm.Open(sqlite.Open(path), cfg)
		if err == nil {
			err = handle.Exec("PRAGMA foreign_keys = ON;").Error
		}
	default:
		dialect = "postgres"
		host := envutil.GetEnv("POSTGRES_HOST", "localhost", logg)
		port := envutil.GetEnv("POSTGRES_PORT", "5432", logg)
		user := envutil.GetEnv("POSTGRES_USER", "postgres", logg)
		password := envutil.GetEnv("POSTGRES_PASSWORD", "", logg)
		name := envutil.GetEnv("POSTGRES_NAME", "commerce", logg)
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, name,
		)
		handle, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	return &Service{db: handle, log: serviceLog, dialect: dialect}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	if err := s.db.AutoMigrate(
		&domain.Product{},
		&domain.Customer{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		return err
	}
	return s.ensureProductReference()
}

// Order lines reference products by id only; the RESTRICT constraint is the
// database backstop for the delete gating done in the repository.
func (s *Service) ensureProductReference() error {
	if s.dialect != "postgres" {
		return nil
	}
	return s.db.Exec(`
DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_order_item_product') THEN
		ALTER TABLE order_item
			ADD CONSTRAINT fk_order_item_product
			FOREIGN KEY (product_id) REFERENCES product(id) ON DELETE RESTRICT;
	END IF;
END $$;`).Error
}
