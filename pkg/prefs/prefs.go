// Package prefs persists user preferences between runs.
//
// Preferences live in a small TOML file next to the config file
// ($XDG_CONFIG_HOME/octoscope/prefs.toml). Unlike config, prefs are written
// by the program itself, for example when the theme is toggled.
package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/octoscope/pkg/config"
	"github.com/matzehuels/octoscope/pkg/errors"
)

const fileName = "prefs.toml"

// Theme is the color scheme of the terminal UI.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// DefaultTheme applies when nothing valid was stored.
	DefaultTheme = Light
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown theme %q (want light or dark)", s)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

type fileData struct {
	Theme Theme `toml:"theme"`
}

// Store is a file-backed preference store. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	path  string
	theme Theme
}

// Load opens the preferences at path, or the default location when path is
// empty. A missing, unreadable or invalid file yields defaults; the file is
// only created on the first write.
func Load(path string) (*Store, error) {
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, fileName)
	}

	s := &Store{path: path, theme: DefaultTheme}
	var data fileData
	if _, err := toml.DecodeFile(path, &data); err == nil {
		if t, err := ParseTheme(string(data.Theme)); err == nil {
			s.theme = t
		}
	}
	return s, nil
}

// Theme returns the stored theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme stores t and writes it to disk.
func (s *Store) SetTheme(t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(fileData{Theme: t}); err != nil {
		return err
	}
	s.theme = t
	return nil
}

// Toggle switches between light and dark and returns the new theme.
func (s *Store) Toggle() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.theme.Opposite()
	if err := s.writeLocked(fileData{Theme: next}); err != nil {
		return s.theme, err
	}
	s.theme = next
	return next, nil
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) writeLocked(data fileData) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	return nil
}
