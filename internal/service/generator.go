package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	// MaxLength bounds random and PIN lengths accepted from clients.
	MaxLength = 128
	// MaxWordCount bounds passphrase word counts accepted from clients.
	MaxWordCount = 20

	defaultPINLength = 4
	defaultWordCount = 1
)

var (
	ErrUnknownMode         = errors.New("unknown generation mode")
	ErrNoCharacterTypes    = errors.New("at least one character type must be selected")
	ErrWordCountRequired   = errors.New("word_count must be selected")
	ErrSeparatorRequired   = errors.New("separator must be selected")
	ErrPINLengthRequired   = errors.New("length must be selected for pin mode")
	ErrLengthOutOfRange    = fmt.Errorf("length must be between 1 and %d", MaxLength)
	ErrWordCountOutOfRange = fmt.Errorf("word_count must be between 1 and %d", MaxWordCount)
)

// GeneratorService dispatches generation requests to the matching generator
// and attaches a strength report to every result.
type GeneratorService struct {
	rand io.Reader
}

// NewGeneratorService creates a GeneratorService backed by crypto/rand.
func NewGeneratorService() *GeneratorService {
	return &GeneratorService{rand: rand.Reader}
}

// NewGeneratorServiceWithSource creates a GeneratorService reading randomness from r.
func NewGeneratorServiceWithSource(r io.Reader) *GeneratorService {
	return &GeneratorService{rand: r}
}

// CanGenerate reports whether req has enough options chosen to generate.
// Callers gate on it; Generate itself never validates options.
func CanGenerate(req model.GenerateRequest) error {
	switch req.Mode.Normalize() {
	case model.ModeRandom:
		if !boolOrDefault(req.Uppercase, false) && !boolOrDefault(req.Lowercase, false) &&
			!boolOrDefault(req.Numbers, false) && !boolOrDefault(req.Symbols, false) {
			return ErrNoCharacterTypes
		}
		if req.Length != nil && (*req.Length < 0 || *req.Length > MaxLength) {
			return ErrLengthOutOfRange
		}
	case model.ModePassphrase:
		if req.WordCount == nil {
			return ErrWordCountRequired
		}
		if req.Separator == nil {
			return ErrSeparatorRequired
		}
		if *req.WordCount < 1 || *req.WordCount > MaxWordCount {
			return ErrWordCountOutOfRange
		}
	case model.ModePIN:
		if req.Length == nil {
			return ErrPINLengthRequired
		}
		if *req.Length < 1 || *req.Length > MaxLength {
			return ErrLengthOutOfRange
		}
	default:
		return ErrUnknownMode
	}
	return nil
}

// Generate produces a password for req.Mode and evaluates its strength.
// Unset options fall back to permissive defaults rather than failing.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	mode := req.Mode.Normalize()

	var (
		password string
		err      error
	)

	switch mode {
	case model.ModeRandom:
		password, err = crypto.GenerateFrom(s.rand, RandomOptions(req))
	case model.ModePassphrase:
		password, err = crypto.GeneratePassphraseFrom(s.rand, PassphraseOptions(req))
	case model.ModePIN:
		password, err = crypto.GeneratePINFrom(s.rand, PINOptions(req))
	default:
		return model.GenerateResponse{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password: password,
		Mode:     mode,
		Length:   crypto.CharLength(password),
		Strength: s.Evaluate(password),
	}, nil
}

// Evaluate returns the strength report for password.
func (s *GeneratorService) Evaluate(password string) model.StrengthResponse {
	return model.NewStrengthResponse(crypto.EvaluateStrength(password))
}

// RandomOptions maps a request onto random generator options.
// A missing or zero length takes the length of crypto.DefaultOptions.
func RandomOptions(req model.GenerateRequest) crypto.GeneratorOptions {
	opts := crypto.GeneratorOptions{
		Length:    intOrDefault(req.Length, 0),
		Uppercase: boolOrDefault(req.Uppercase, false),
		Lowercase: boolOrDefault(req.Lowercase, false),
		Numbers:   boolOrDefault(req.Numbers, false),
		Symbols:   boolOrDefault(req.Symbols, false),
	}

	if opts.Length == 0 {
		opts.Length = crypto.DefaultOptions().Length
	}
	return opts
}

// PassphraseOptions maps a request onto passphrase generator options.
func PassphraseOptions(req model.GenerateRequest) crypto.PassphraseOptions {
	return crypto.PassphraseOptions{
		WordCount:     intOrDefault(req.WordCount, defaultWordCount),
		Separator:     stringOrDefault(req.Separator, ""),
		Capitalize:    boolOrDefault(req.Capitalize, false),
		IncludeNumber: boolOrDefault(req.IncludeNumber, false),
	}
}

// PINOptions maps a request onto PIN generator options.
func PINOptions(req model.GenerateRequest) crypto.PINOptions {
	return crypto.PINOptions{Length: intOrDefault(req.Length, defaultPINLength)}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func stringOrDefault(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
