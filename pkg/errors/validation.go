package errors

import (
	"strings"
	"unicode"
)

// maxUsernameLength bounds what is sent to the API. GitHub logins are at most
// 39 characters; the looser bound leaves room for GHE and lets GitHub answer
// 404 for anything merely unusual.
const maxUsernameLength = 100

// NormalizeUsername trims surrounding whitespace and validates the result.
//
// Validation is deliberately loose: only input that can never be a login is
// rejected locally. Everything else is sent (percent-encoded) and GitHub
// decides with a 404.
//
//   - empty or whitespace-only
//   - control characters
//   - longer than 100 characters
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", New(ErrCodeInvalidInput, MsgInvalidInput)
	}
	if len(name) > maxUsernameLength {
		return "", New(ErrCodeInvalidInput, "username too long (max %d characters)", maxUsernameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidInput, "username contains invalid control characters")
		}
	}
	return name, nil
}

// ValidatePage checks page-based pagination arguments against the limits of
// the GitHub REST API (per_page is capped at 100).
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return New(ErrCodeInvalidInput, "page must be at least 1, got %d", page)
	}
	if pageSize < 1 || pageSize > 100 {
		return New(ErrCodeInvalidInput, "page size must be between 1 and 100, got %d", pageSize)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
