package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaultpass/passgen-go/internal/model"
)

var ErrInvalidKeep = errors.New("keep must be positive")

// HistoryRepository persists sealed password history in MySQL.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const (
	deleteFingerprintQuery = `DELETE FROM password_history WHERE session_id = ? AND fingerprint = ?`

	insertEntryQuery = `INSERT INTO password_history (session_id, fingerprint, sealed, mode, created_at)
		VALUES (?, ?, ?, ?, ?)`

	// MySQL rejects LIMIT inside IN subqueries, so the kept IDs go through a derived table.
	pruneQuery = `
	DELETE FROM password_history
	WHERE session_id = ? AND id NOT IN (
		SELECT id FROM (
			SELECT id FROM password_history
			WHERE session_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		) AS newest
	)`

	listQuery = `SELECT id, session_id, fingerprint, sealed, mode, created_at
		FROM password_history WHERE session_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`
)

// Record replaces any entry with the same fingerprint, inserts entry and prunes
// the session down to the newest keep entries, all in one transaction.
func (r *HistoryRepository) Record(ctx context.Context, entry *model.HistoryEntry, keep int) error {
	if keep < 1 {
		return ErrInvalidKeep
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteFingerprintQuery, entry.SessionID, entry.Fingerprint); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, insertEntryQuery,
		entry.SessionID,
		entry.Fingerprint,
		entry.Sealed,
		string(entry.Mode),
		entry.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, pruneQuery, entry.SessionID, entry.SessionID, keep); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// List retrieves up to limit entries for a session, newest first.
func (r *HistoryRepository) List(ctx context.Context, sessionID string, limit int) ([]model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			e    model.HistoryEntry
			mode string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Fingerprint, &e.Sealed, &mode, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Mode = model.Mode(mode)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear deletes every entry of a session.
func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_history WHERE session_id = ?`, sessionID)
	return err
}
