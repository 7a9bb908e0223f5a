package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

//go:embed defaults.example.toml
var exampleDefaults []byte

const defaultsRelPath = "passgen/config.toml"

// Defaults holds the CLI's per-mode option defaults.
type Defaults struct {
	Random     RandomDefaults     `toml:"random"`
	Passphrase PassphraseDefaults `toml:"passphrase"`
	PIN        PINDefaults        `toml:"pin"`
}

// RandomDefaults are the default random-mode options.
type RandomDefaults struct {
	Length    int  `toml:"length"`
	Uppercase bool `toml:"uppercase"`
	Lowercase bool `toml:"lowercase"`
	Numbers   bool `toml:"numbers"`
	Symbols   bool `toml:"symbols"`
}

// PassphraseDefaults are the default passphrase-mode options.
type PassphraseDefaults struct {
	WordCount     int    `toml:"word_count"`
	Separator     string `toml:"separator"`
	Capitalize    bool   `toml:"capitalize"`
	IncludeNumber bool   `toml:"include_number"`
}

// PINDefaults are the default PIN-mode options.
type PINDefaults struct {
	Length int `toml:"length"`
}

// DefaultsPath returns the XDG config location of the CLI defaults file.
func DefaultsPath() string {
	return filepath.Join(xdg.ConfigHome, defaultsRelPath)
}

// BuiltinDefaults returns the defaults embedded in the binary.
func BuiltinDefaults() Defaults {
	var d Defaults
	if err := toml.Unmarshal(exampleDefaults, &d); err != nil {
		panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
	}
	return d
}

// LoadDefaults reads the defaults file at path on top of the builtin defaults.
// A missing file is not an error.
func LoadDefaults(path string) (Defaults, error) {
	d := BuiltinDefaults()

	if _, err := toml.DecodeFile(path, &d); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return BuiltinDefaults(), nil
		}
		return Defaults{}, fmt.Errorf("failed to parse defaults: %w", err)
	}

	return d, nil
}

// WriteDefaults writes the embedded example defaults to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefaults(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("defaults file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleDefaults, 0o644); err != nil {
		return fmt.Errorf("failed to write defaults file: %w", err)
	}

	return nil
}
