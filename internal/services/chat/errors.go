package chat

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrUpstreamUnavailable means the call to the model could not complete.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrEmptyUpstreamReply means the model answered with no usable text.
	ErrEmptyUpstreamReply = errors.New("empty upstream reply")
)

// UpstreamRejectedError means the model API completed the call but reported
// failure.
type UpstreamRejectedError struct {
	Errors []json.RawMessage
}

func (e *UpstreamRejectedError) Error() string {
	return "upstream rejected request: " + e.ErrorList()
}

// ErrorList renders the upstream errors as a JSON array.
func (e *UpstreamRejectedError) ErrorList() string {
	parts := make([]string, 0, len(e.Errors))
	for _, raw := range e.Errors {
		parts = append(parts, string(raw))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
