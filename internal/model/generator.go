package model

import "github.com/vaultpass/passgen-go/internal/crypto"

// Mode selects the generation strategy.
type Mode string

const (
	ModeRandom     Mode = "random"
	ModePassphrase Mode = "passphrase"
	ModePIN        Mode = "pin"

	// ModeMemorable is accepted as an alias of ModePassphrase.
	ModeMemorable Mode = "memorable"
)

// Normalize maps aliases and the empty mode onto a canonical Mode.
func (m Mode) Normalize() Mode {
	switch m {
	case "":
		return ModeRandom
	case ModeMemorable:
		return ModePassphrase
	default:
		return m
	}
}

// GenerateRequest represents a password generation request.
// Pointer fields distinguish an option that was never chosen (nil) from an
// explicit zero value, which is what the precondition gate looks at.
type GenerateRequest struct {
	Mode Mode `json:"mode"`

	// random and pin
	Length *int `json:"length"`

	// random
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`

	// passphrase
	WordCount     *int    `json:"word_count"`
	Separator     *string `json:"separator"`
	Capitalize    *bool   `json:"capitalize"`
	IncludeNumber *bool   `json:"include_number"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string           `json:"password"`
	Mode     Mode             `json:"mode"`
	Length   int              `json:"length"`
	Strength StrengthResponse `json:"strength"`
}

// StrengthRequest asks for the strength of an arbitrary password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse is the JSON form of a strength report.
type StrengthResponse struct {
	Score    int    `json:"score"`
	Level    string `json:"level"`
	Color    string `json:"color"`
	Feedback string `json:"feedback"`
}

// NewStrengthResponse converts a crypto.Strength report.
func NewStrengthResponse(s crypto.Strength) StrengthResponse {
	return StrengthResponse{
		Score:    s.Score,
		Level:    string(s.Level),
		Color:    s.Color,
		Feedback: s.Feedback,
	}
}
