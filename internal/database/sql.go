package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"tweetboard/internal/model"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS tweets (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	author VARCHAR(50) NOT NULL,
	message VARCHAR(280) NOT NULL,
	date BIGINT NOT NULL,
	deleted_at BIGINT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tweets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author TEXT NOT NULL,
	message TEXT NOT NULL,
	date INTEGER NOT NULL,
	deleted_at INTEGER NULL
);
`

const selectColumns = "SELECT id, author, message, date FROM tweets"

// SQLStore is a Store over database/sql. MySQL/MariaDB and SQLite share it;
// both use '?' placeholders.
type SQLStore struct {
	DB *sql.DB
}

// OpenMySQL connects to MySQL/MariaDB and creates the tweets table.
func OpenMySQL(ctx context.Context, dsn string) (*SQLStore, error) {
	return openSQL(ctx, "mysql", dsn, mysqlSchema)
}

// OpenSQLite opens (or creates) an SQLite database, e.g.
// "file:tweets.db?_pragma=busy_timeout(5000)" or ":memory:".
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	s, err := openSQL(ctx, "sqlite", dsn, sqliteSchema)
	if err != nil {
		return nil, err
	}
	// each connection to ":memory:" is a separate database
	s.DB.SetMaxOpenConns(1)
	return s, nil
}

func openSQL(ctx context.Context, driver, dsn, schema string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 接続テスト
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tweets table: %w", err)
	}

	return &SQLStore{DB: db}, nil
}

func (s *SQLStore) List(ctx context.Context) ([]model.Record, error) {
	return s.query(ctx, selectColumns+" WHERE deleted_at IS NULL ORDER BY id")
}

func (s *SQLStore) Get(ctx context.Context, id int64) (model.Record, error) {
	row := s.DB.QueryRowContext(ctx, selectColumns+" WHERE id = ? AND deleted_at IS NULL", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLStore) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	// Insert tweet with AUTO_INCREMENT id
	result, err := s.DB.ExecContext(ctx,
		"INSERT INTO tweets (author, message, date, deleted_at) VALUES (?, ?, ?, NULL)",
		rec.Author, rec.Message, toMillis(rec.CreatedAt))
	if err != nil {
		return model.Record{}, fmt.Errorf("insert tweet: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Record{}, fmt.Errorf("retrieve tweet id: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = fromMillis(toMillis(rec.CreatedAt))
	rec.DeletedAt = nil
	return rec, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, author, message string) (model.Record, error) {
	// MySQL reports 0 affected rows for no-op updates, so check existence first
	rec, err := s.Get(ctx, id)
	if err != nil {
		return model.Record{}, err
	}

	_, err = s.DB.ExecContext(ctx,
		"UPDATE tweets SET author = ?, message = ? WHERE id = ? AND deleted_at IS NULL",
		author, message, id)
	if err != nil {
		return model.Record{}, fmt.Errorf("update tweet %d: %w", id, err)
	}

	rec.Author = author
	rec.Message = message
	return rec, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64, at time.Time) error {
	result, err := s.DB.ExecContext(ctx,
		"UPDATE tweets SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		toMillis(at), id)
	if err != nil {
		return fmt.Errorf("delete tweet %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tweet %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ByAuthor(ctx context.Context, author string) ([]model.Record, error) {
	return s.query(ctx,
		selectColumns+" WHERE deleted_at IS NULL AND LOWER(author) = LOWER(?) ORDER BY id",
		author)
}

func (s *SQLStore) Search(ctx context.Context, text string) ([]model.Record, error) {
	return s.query(ctx,
		selectColumns+" WHERE deleted_at IS NULL AND LOWER(message) LIKE ? ESCAPE '!' ORDER BY id",
		likePattern(text))
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM tweets WHERE deleted_at IS NULL").Scan(&n)
	return n, err
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]model.Record, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()

	out := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return out, nil
}

// scanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.Record, error) {
	var (
		rec model.Record
		ms  int64
	)
	if err := row.Scan(&rec.ID, &rec.Author, &rec.Message, &ms); err != nil {
		return model.Record{}, err
	}
	rec.CreatedAt = fromMillis(ms)
	return rec, nil
}
