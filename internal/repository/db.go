package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const schema = `
	CREATE TABLE IF NOT EXISTS password_history (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		session_id  VARCHAR(36)     NOT NULL,
		fingerprint CHAR(64)        NOT NULL,
		sealed      VARBINARY(1024) NOT NULL,
		mode        VARCHAR(16)     NOT NULL DEFAULT '',
		created_at  DATETIME(6)     NOT NULL,
		UNIQUE KEY uq_history_fingerprint (session_id, fingerprint),
		KEY idx_history_created (session_id, created_at)
	)`

// NewDB creates a new MySQL database connection pool with the given DSN.
// The DSN must set parseTime=true so DATETIME columns scan into time.Time.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed", "error", err)
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the history table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
