package errors

import (
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// User-facing messages, one per code.
const (
	MsgInvalidInput = "Please enter a username."
	MsgNotFound     = "User not found"
	MsgRateLimited  = "GitHub API rate limit reached. Please try again later."
	MsgUnauthorized = "GitHub rejected the configured token. Check GITHUB_TOKEN."
	MsgServer       = "GitHub is having trouble right now. Please try again."
	MsgNetwork      = "Could not reach GitHub. Check your connection and try again."
)

// now is replaced in tests.
var now = time.Now

// UserMessage returns the single message shown to a user for err.
//
// GitHub's raw error text is never shown for a known code. INVALID_INPUT
// keeps the validation message since it was produced locally. Errors that
// are not an *Error fall back to their own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Code {
	case ErrCodeInvalidInput:
		if e.Message != "" {
			return e.Message
		}
		return MsgInvalidInput
	case ErrCodeNotFound:
		return MsgNotFound
	case ErrCodeRateLimited:
		return rateLimitMessage(e.ResetAt)
	case ErrCodeUnauthorized:
		return MsgUnauthorized
	case ErrCodeServer:
		return MsgServer
	case ErrCodeNetwork:
		return MsgNetwork
	}
	if e.Message != "" {
		return e.Message
	}
	return err.Error()
}

func rateLimitMessage(reset time.Time) string {
	if reset.IsZero() {
		return MsgRateLimited
	}
	t := now()
	if reset.Sub(t) < time.Second {
		return "GitHub API rate limit reached. Try again now."
	}
	return "GitHub API rate limit reached. Try again in " +
		strings.TrimSpace(humanize.RelTime(t, reset, "", "")) + "."
}
