package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tweetboard/internal/config"
	"tweetboard/internal/model"
)

// ErrNotFound is returned when a tweet does not exist or was deleted.
var ErrNotFound = errors.New("tweet not found")

// Store persists tweets. Deleted tweets are kept with DeletedAt set and are
// invisible to every read.
type Store interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id int64) (model.Record, error)
	Create(ctx context.Context, rec model.Record) (model.Record, error)
	// Update replaces author and message, keeping the original date.
	Update(ctx context.Context, id int64, author, message string) (model.Record, error)
	Delete(ctx context.Context, id int64, at time.Time) error
	// ByAuthor matches the author case-insensitively.
	ByAuthor(ctx context.Context, author string) ([]model.Record, error)
	// Search matches a case-insensitive substring of the message.
	Search(ctx context.Context, text string) ([]model.Record, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Init opens the store selected by cfg.DBDriver, migrates it and seeds sample
// tweets when it is empty and cfg.SeedData is set.
func Init(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch strings.ToLower(cfg.DBDriver) {
	case "", "memory":
		store = NewMemoryStore()
	case "mysql", "mariadb":
		store, err = OpenMySQL(ctx, MySQLDSN(cfg))
	case "sqlite":
		store, err = OpenSQLite(ctx, cfg.SQLitePath)
	case "postgres", "postgresql":
		store, err = OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("✅ Database connection established", "driver", cfg.DBDriver)

	if cfg.SeedData {
		n, err := Seed(ctx, store, time.Now())
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("seed database: %w", err)
		}
		if n > 0 {
			slog.Info("Database seeded with sample tweets", "count", n)
		}
	}

	return store, nil
}

// MySQLDSN builds the go-sql-driver DSN from cfg.
func MySQLDSN(cfg config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)
}

// likePattern builds a LIKE pattern for a case-insensitive substring match
// using '!' as the escape character.
func likePattern(text string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(text)) + "%"
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
