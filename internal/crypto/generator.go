package crypto

import (
	"crypto/rand"
	"io"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// DefaultLength is used by callers when no length was chosen.
	DefaultLength = 16
)

// GeneratorOptions configures the random password generator.
type GeneratorOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// PINOptions configures numeric PIN generation.
type PINOptions struct {
	Length int
}

// DefaultOptions returns 16 characters with letters and digits enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   false,
	}
}

// Alphabet returns the characters eligible for selection under opts, in the
// fixed order uppercase, lowercase, numbers, symbols. An empty selection
// falls back to the lowercase alphabet.
func Alphabet(opts GeneratorOptions) string {
	var pool string
	if opts.Uppercase {
		pool += uppercaseChars
	}
	if opts.Lowercase {
		pool += lowercaseChars
	}
	if opts.Numbers {
		pool += numberChars
	}
	if opts.Symbols {
		pool += symbolChars
	}

	if pool == "" {
		pool = lowercaseChars
	}
	return pool
}

// Generate creates a random password from crypto/rand based on the given options.
//
// A non-positive Length is a caller contract violation and yields an empty string.
func Generate(opts GeneratorOptions) (string, error) {
	return GenerateFrom(rand.Reader, opts)
}

// GenerateFrom is Generate with an explicit random source.
func GenerateFrom(r io.Reader, opts GeneratorOptions) (string, error) {
	if opts.Length <= 0 {
		return "", nil
	}

	pool := Alphabet(opts)
	result := make([]byte, opts.Length)

	for i := range result {
		idx, err := randIndex(r, len(pool))
		if err != nil {
			return "", err
		}
		result[i] = pool[idx]
	}

	return string(result), nil
}

// GeneratePIN creates a numeric PIN of the requested length.
func GeneratePIN(opts PINOptions) (string, error) {
	return GeneratePINFrom(rand.Reader, opts)
}

// GeneratePINFrom is GeneratePIN with an explicit random source.
func GeneratePINFrom(r io.Reader, opts PINOptions) (string, error) {
	return GenerateFrom(r, GeneratorOptions{Length: opts.Length, Numbers: true})
}
