package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// SessionService issues anonymous session tokens that scope password history.
type SessionService struct {
	secret string
	expiry time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(secret string, expiry time.Duration) *SessionService {
	return &SessionService{secret: secret, expiry: expiry}
}

// Create starts a new session with a random ID.
func (s *SessionService) Create() (model.SessionResponse, error) {
	sessionID := uuid.NewString()

	token, expiresAt, err := crypto.IssueSessionToken(sessionID, s.secret, s.expiry)
	if err != nil {
		return model.SessionResponse{}, err
	}

	return model.SessionResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}
