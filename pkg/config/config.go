// Package config loads octoscope settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at $XDG_CONFIG_HOME/octoscope/config.toml
//     (~/.config/octoscope/config.toml), or the file passed to --config
//  3. environment: GITHUB_TOKEN and OCTOSCOPE_API_URL
//  4. command-line flags, applied by the CLI
//
// Example file:
//
//	api_url = "https://api.github.com"
//	token = "ghp_..."
//	page_size = 10
//	suggestion_limit = 8
//	debounce = "250ms"
//	suggestions_per_minute = 30
//	timeout = "10s"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/octoscope/pkg/errors"
)

const (
	appName  = "octoscope"
	fileName = "config.toml"

	// EnvToken and EnvAPIURL override the file values.
	EnvToken  = "GITHUB_TOKEN"
	EnvAPIURL = "OCTOSCOPE_API_URL"
)

// Config holds all user-tunable settings.
type Config struct {
	APIURL               string        `toml:"api_url" validate:"required,url"`
	Token                string        `toml:"token,omitempty"`
	PageSize             int           `toml:"page_size" validate:"min=1,max=100"`
	SuggestionLimit      int           `toml:"suggestion_limit" validate:"min=5,max=8"`
	Debounce             time.Duration `toml:"debounce" validate:"min=0,max=5s"`
	SuggestionsPerMinute int           `toml:"suggestions_per_minute" validate:"min=0"`
	Timeout              time.Duration `toml:"timeout" validate:"min=1s,max=5m"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:          "https://api.github.com",
		PageSize:        10,
		SuggestionLimit: 8,
		Debounce:        250 * time.Millisecond,
		Timeout:         10 * time.Second,
	}
}

// Dir returns the octoscope config directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the config file used when --config is not given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the file at path over the defaults, applies the environment and
// then overrides in order, and validates the result. An empty path means
// [DefaultPath], which may be absent. An explicit path must exist.
//
// Overrides are how command-line flags take precedence: a value that is
// invalid in the file is accepted when an override replaces it.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()

	required := path != ""
	if !required {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.readFile(path, required); err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)
	for _, o := range overrides {
		o(&cfg)
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides file values with non-empty environment values.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvToken)); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field against its bounds. All violations are
// reported in one INVALID_INPUT error naming the TOML keys.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid config")
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return errors.New(errors.ErrCodeInvalidInput, "invalid config: %s", strings.Join(msgs, "; "))
	}
	return errors.ValidateURL(c.APIURL)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", fe.Field(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// MaskedToken returns the token with all but its last four characters hidden.
func (c Config) MaskedToken() string {
	switch n := len(c.Token); {
	case n == 0:
		return ""
	case n <= 8:
		return strings.Repeat("*", n)
	default:
		return strings.Repeat("*", n-4) + c.Token[n-4:]
	}
}

// Encode writes c as TOML with the token masked.
func (c Config) Encode(w io.Writer) error {
	c.Token = c.MaskedToken()
	return toml.NewEncoder(w).Encode(c)
}
