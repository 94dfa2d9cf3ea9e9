package workersai

import (
	"encoding/json"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
)

// RunRequest is the body sent to the Workers AI run endpoint.
type RunRequest struct {
	Messages []models.Message `json:"messages"`
}

// RunResult carries the generated text.
type RunResult struct {
	Response string `json:"response"`
}

// RunResponse is the Cloudflare API envelope around a run result. Errors are
// kept as raw JSON so they can be reported exactly as the API sent them.
type RunResponse struct {
	Success bool              `json:"success"`
	Result  *RunResult        `json:"result,omitempty"`
	Errors  []json.RawMessage `json:"errors,omitempty"`
}

// Reply returns the generated text, or "" when the result is absent.
func (r *RunResponse) Reply() string {
	if r == nil || r.Result == nil {
		return ""
	}
	return r.Result.Response
}
