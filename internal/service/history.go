package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	// MaxHistory is the number of entries kept per session.
	MaxHistory = 10
	// MaxHistoryPasswordBytes bounds a recorded password so its sealed form
	// fits the storage column.
	MaxHistoryPasswordBytes = 256
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes", MaxHistoryPasswordBytes)
	ErrSessionRequired  = errors.New("session is required")
)

// HistoryStore persists sealed history entries.
//
// Record must atomically drop any entry of the same session with the same
// fingerprint, insert the new entry, and keep only the newest keep entries.
type HistoryStore interface {
	Record(ctx context.Context, entry *model.HistoryEntry, keep int) error
	List(ctx context.Context, sessionID string, limit int) ([]model.HistoryEntry, error)
	Clear(ctx context.Context, sessionID string) error
}

// HistoryService keeps a bounded, deduplicated list of accepted passwords per session.
type HistoryService struct {
	store  HistoryStore
	sealer *crypto.Sealer
	now    func() time.Time
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store HistoryStore, sealer *crypto.Sealer) *HistoryService {
	return &HistoryService{
		store:  store,
		sealer: sealer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record stores password at the front of the session history and returns the updated list.
// Recording a password already present moves it to the front with a fresh timestamp.
func (s *HistoryService) Record(ctx context.Context, sessionID string, req model.HistoryRecordRequest) (model.HistoryResponse, error) {
	if sessionID == "" {
		return model.HistoryResponse{}, ErrSessionRequired
	}
	if req.Password == "" {
		return model.HistoryResponse{}, ErrPasswordRequired
	}
	if len(req.Password) > MaxHistoryPasswordBytes {
		return model.HistoryResponse{}, ErrPasswordTooLong
	}

	mode := req.Mode.Normalize()
	switch mode {
	case model.ModeRandom, model.ModePassphrase, model.ModePIN:
	default:
		return model.HistoryResponse{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	sealed, err := s.sealer.Seal(req.Password)
	if err != nil {
		return model.HistoryResponse{}, err
	}

	entry := model.HistoryEntry{
		SessionID:   sessionID,
		Fingerprint: s.sealer.Fingerprint(req.Password),
		Sealed:      sealed,
		Mode:        mode,
		CreatedAt:   s.now(),
	}

	if err := s.store.Record(ctx, &entry, MaxHistory); err != nil {
		return model.HistoryResponse{}, err
	}

	return s.List(ctx, sessionID)
}

// List returns the session history, newest first.
// Entries that can no longer be opened are skipped and counted.
func (s *HistoryService) List(ctx context.Context, sessionID string) (model.HistoryResponse, error) {
	if sessionID == "" {
		return model.HistoryResponse{}, ErrSessionRequired
	}

	entries, err := s.store.List(ctx, sessionID, MaxHistory)
	if err != nil {
		return model.HistoryResponse{}, err
	}

	resp := model.HistoryResponse{Entries: make([]model.HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		password, err := s.sealer.Open(e.Sealed)
		if err != nil {
			slog.Warn("skipping history entry: open failed", "entry_id", e.ID, "error", err)
			resp.Skipped++
			continue
		}

		resp.Entries = append(resp.Entries, model.HistoryEntryResponse{
			Password:  password,
			Mode:      e.Mode,
			CreatedAt: e.CreatedAt,
			Strength:  model.NewStrengthResponse(crypto.EvaluateStrength(password)),
		})
	}

	return resp, nil
}

// Clear removes the whole session history.
func (s *HistoryService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	return s.store.Clear(ctx, sessionID)
}
