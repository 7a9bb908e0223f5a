package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testSealer(t *testing.T, secret string) *Sealer {
	t.Helper()
	s, err := NewSealerWithParams(secret, KeyParams{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		Salt:        []byte("test-salt"),
	})
	if err != nil {
		t.Fatalf("NewSealerWithParams() unexpected error: %v", err)
	}
	return s
}

func TestSealOpen(t *testing.T) {
	s := testSealer(t, "history-secret")

	for _, plaintext := range []string{"", "apple-ocean-42", "Zk9!x#Qv", "ünïcødé"} {
		sealed, err := s.Seal(plaintext)
		if err != nil {
			t.Fatalf("Seal(%q) unexpected error: %v", plaintext, err)
		}
		if len(plaintext) > 0 && bytes.Contains(sealed, []byte(plaintext)) {
			t.Errorf("Seal(%q) leaked plaintext", plaintext)
		}

		got, err := s.Open(sealed)
		if err != nil {
			t.Fatalf("Open() unexpected error: %v", err)
		}
		if got != plaintext {
			t.Errorf("Open() = %q, want %q", got, plaintext)
		}
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	s := testSealer(t, "history-secret")

	a, err := s.Seal("same-password")
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	b, err := s.Seal("same-password")
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Seal() produced identical output for the same plaintext")
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	s := testSealer(t, "history-secret")

	sealed, err := s.Seal("apple-ocean-42")
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff

	if _, err := s.Open(sealed); !errors.Is(err, ErrOpenFailed) {
		t.Errorf("Open() error = %v, want ErrOpenFailed", err)
	}
}

func TestOpenWrongSecret(t *testing.T) {
	sealed, err := testSealer(t, "secret-a").Seal("apple-ocean-42")
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}

	if _, err := testSealer(t, "secret-b").Open(sealed); !errors.Is(err, ErrOpenFailed) {
		t.Errorf("Open() error = %v, want ErrOpenFailed", err)
	}
}

func TestOpenTooShort(t *testing.T) {
	s := testSealer(t, "history-secret")
	if _, err := s.Open([]byte("short")); !errors.Is(err, ErrSealedTooShort) {
		t.Errorf("Open() error = %v, want ErrSealedTooShort", err)
	}
}

func TestFingerprint(t *testing.T) {
	s := testSealer(t, "history-secret")

	a := s.Fingerprint("apple-ocean-42")
	if len(a) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64 hex characters", len(a))
	}
	if a != s.Fingerprint("apple-ocean-42") {
		t.Error("Fingerprint() is not stable for equal input")
	}
	if a == s.Fingerprint("apple-ocean-43") {
		t.Error("Fingerprint() collided for different input")
	}
	if a == testSealer(t, "other-secret").Fingerprint("apple-ocean-42") {
		t.Error("Fingerprint() should depend on the secret")
	}
}

func TestNewSealerEmptySecret(t *testing.T) {
	if _, err := NewSealer(""); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("NewSealer() error = %v, want ErrEmptySecret", err)
	}
}
