package workersai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deepgram/chatrelay/internal/config"
	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseURL string) *Service {
	return NewService(config.CloudflareConfig{
		BaseURL:   baseURL,
		AccountID: "acct-123",
		APIToken:  "secret-token",
		Model:     config.Model,
		Timeout:   time.Second,
	})
}

func TestServiceRun(t *testing.T) {
	var gotBody RunRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acct-123/ai/run/@cf/meta/llama-3-8b-instruct", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"result":{"response":" Hi there! "},"errors":[]}`)
	}))
	defer server.Close()

	history := []models.Message{
		models.UserMessage("hello"),
		models.AssistantMessage("Hi!"),
		models.UserMessage("how are you?"),
	}

	resp, err := newTestService(server.URL).Run(context.Background(), history)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, " Hi there! ", resp.Reply())
	assert.Equal(t, history, gotBody.Messages, "the full history must be sent upstream")
}

func TestServiceRunReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"result":null,"errors":[{"code":5006,"message":"Model error"}]}`)
	}))
	defer server.Close()

	resp, err := newTestService(server.URL).Run(context.Background(), []models.Message{models.UserMessage("hello")})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "", resp.Reply())
	require.Len(t, resp.Errors, 1)
	assert.JSONEq(t, `{"code":5006,"message":"Model error"}`, string(resp.Errors[0]))
}

func TestServiceRunTransportErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"success":false,"errors":[{"code":10000,"message":"Authentication error"}]}`)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestService(server.URL).Run(context.Background(), []models.Message{models.UserMessage("hello")})

			var transportErr *TransportError
			require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
			assert.Equal(t, tt.wantStatus, transportErr.StatusCode)
		})
	}
}

func TestServiceRunConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestService(url).Run(context.Background(), []models.Message{models.UserMessage("hello")})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestServiceRunHonoursContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(server.URL).Run(ctx, []models.Message{models.UserMessage("hello")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
}

func TestServiceRunTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	svc := NewService(config.CloudflareConfig{
		BaseURL:   server.URL,
		AccountID: "acct-123",
		APIToken:  "secret-token",
		Model:     config.Model,
		Timeout:   50 * time.Millisecond,
	})

	_, err := svc.Run(context.Background(), []models.Message{models.UserMessage("hello")})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
	assert.Equal(t, 0, transportErr.StatusCode)
}
