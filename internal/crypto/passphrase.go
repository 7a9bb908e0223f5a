package crypto

import (
	"crypto/rand"
	"io"
	"strconv"
	"strings"
)

const (
	suffixMin  = 10
	suffixSpan = 90
)

// PassphraseOptions configures passphrase generation.
type PassphraseOptions struct {
	WordCount     int
	Separator     string
	Capitalize    bool
	IncludeNumber bool
}

// GeneratePassphrase joins WordCount dictionary words picked from crypto/rand.
// Words are drawn with replacement, so repeats are possible.
func GeneratePassphrase(opts PassphraseOptions) (string, error) {
	return GeneratePassphraseFrom(rand.Reader, opts)
}

// GeneratePassphraseFrom is GeneratePassphrase with an explicit random source.
func GeneratePassphraseFrom(r io.Reader, opts PassphraseOptions) (string, error) {
	parts := make([]string, 0, max(opts.WordCount, 0))

	for i := 0; i < opts.WordCount; i++ {
		idx, err := randIndex(r, len(words))
		if err != nil {
			return "", err
		}
		word := words[idx]
		if opts.Capitalize {
			word = capitalize(word)
		}
		parts = append(parts, word)
	}

	passphrase := strings.Join(parts, opts.Separator)

	if opts.IncludeNumber {
		n, err := randIndex(r, suffixSpan)
		if err != nil {
			return "", err
		}
		passphrase += opts.Separator + strconv.Itoa(suffixMin+n)
	}

	return passphrase, nil
}

// capitalize uppercases the first byte of an ASCII word.
func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
