package dbapi

import (
	"errors"
	"strings"
)

// User-facing messages produced by ClassifyError. The presentation layer
// renders these verbatim next to a retry action.
const (
	MsgNetworkError = "Network error. Check your connection and try again."
	MsgNotFound     = "The requested record was not found."
	MsgServerError  = "The catalog server hit an error. Try again later."
	MsgUnexpected   = "Something unexpected went wrong. Try again."
)

var connectivityHints = []string{
	"request failed",
	"connection refused",
	"no such host",
	"network is unreachable",
	"timeout",
	"deadline exceeded",
}

// ClassifyError maps a failure to a display message by inspecting its text.
// It is a last resort consumed for rendering only and never drives control
// flow; callers that need to branch use the sentinel errors directly.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrCharacterNotFound) {
		return MsgNotFound
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range connectivityHints {
		if strings.Contains(msg, hint) {
			return MsgNetworkError
		}
	}
	switch {
	case strings.Contains(msg, "404"):
		return MsgNotFound
	case strings.Contains(msg, "500"):
		return MsgServerError
	default:
		return MsgUnexpected
	}
}
