package repository

import (
	"context"
	"sync"

	"github.com/vaultpass/passgen-go/internal/model"
)

// MemoryHistoryRepository keeps sealed history in process memory.
// It is used when no database is reachable and has the same semantics as
// HistoryRepository.
type MemoryHistoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[string][]model.HistoryEntry // newest first
}

// NewMemoryHistoryRepository creates an empty MemoryHistoryRepository.
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{sessions: make(map[string][]model.HistoryEntry)}
}

// Record inserts entry at the front of its session, dropping any entry with the
// same fingerprint and anything past keep.
func (r *MemoryHistoryRepository) Record(_ context.Context, entry *model.HistoryEntry, keep int) error {
	if keep < 1 {
		return ErrInvalidKeep
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID

	existing := r.sessions[entry.SessionID]
	updated := make([]model.HistoryEntry, 0, min(len(existing)+1, keep))
	updated = append(updated, cloneEntry(*entry))
	for _, e := range existing {
		if len(updated) == keep {
			break
		}
		if e.Fingerprint == entry.Fingerprint {
			continue
		}
		updated = append(updated, e)
	}

	r.sessions[entry.SessionID] = updated
	return nil
}

// List returns up to limit entries of a session, newest first.
func (r *MemoryHistoryRepository) List(_ context.Context, sessionID string, limit int) ([]model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.sessions[sessionID]
	n := min(len(existing), max(limit, 0))

	entries := make([]model.HistoryEntry, n)
	for i := range entries {
		entries[i] = cloneEntry(existing[i])
	}
	return entries, nil
}

// Clear deletes every entry of a session.
func (r *MemoryHistoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func cloneEntry(e model.HistoryEntry) model.HistoryEntry {
	e.Sealed = append([]byte(nil), e.Sealed...)
	return e
}
