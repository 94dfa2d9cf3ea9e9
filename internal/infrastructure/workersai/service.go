package workersai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepgram/chatrelay/internal/config"
	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Maximum bytes of an error body kept for logging.
const maxErrorBody = 4096

// TransportError means the exchange with Workers AI did not complete: the
// request could not be sent, the API answered with a non-2xx status, or the
// body could not be decoded.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("workers ai request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("workers ai request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Service struct {
	runURL string
	client *resty.Client
}

func NewService(cfg config.CloudflareConfig) *Service {
	log.Info().Str("model", cfg.Model).Dur("timeout", cfg.Timeout).Msg("Initialising Workers AI service")

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIToken).
		SetHeader("Content-Type", "application/json")

	return &Service{
		runURL: cfg.RunURL(),
		client: client,
	}
}

// Run sends the full message history to the model and returns the decoded
// API envelope. A response with success=false is returned without error; the
// caller decides what a rejected run means.
func (s *Service) Run(ctx context.Context, messages []models.Message) (*RunResponse, error) {
	log.Debug().Int("message_count", len(messages)).Msg("Calling Workers AI")

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(RunRequest{Messages: messages}).
		Post(s.runURL)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if !resp.IsSuccess() {
		snippet := resp.Body()
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		log.Warn().
			Int("status", resp.StatusCode()).
			Str("body", string(snippet)).
			Msg("Workers AI returned a non-2xx status")
		return nil, &TransportError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	var runResp RunResponse
	if err := json.Unmarshal(resp.Body(), &runResp); err != nil {
		return nil, &TransportError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return &runResp, nil
}
