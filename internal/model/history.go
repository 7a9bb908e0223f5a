package model

import "time"

// HistoryEntry represents a sealed history entry in the database.
type HistoryEntry struct {
	ID          int64
	SessionID   string
	Fingerprint string
	Sealed      []byte
	Mode        Mode
	CreatedAt   time.Time
}

// HistoryRecordRequest records a password the client accepted (for example by copying it).
type HistoryRecordRequest struct {
	Password string `json:"password"`
	Mode     Mode   `json:"mode"`
}

// HistoryEntryResponse represents a single opened history entry.
type HistoryEntryResponse struct {
	Password  string           `json:"password"`
	Mode      Mode             `json:"mode,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Strength  StrengthResponse `json:"strength"`
}

// HistoryResponse lists history entries, newest first.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Skipped int                    `json:"skipped,omitempty"`
}
