package chat

import (
	"context"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
)

// Service defines the interface for chat operations
type Service interface {
	// HandleChat appends message to the conversation, relays the full history
	// to the model and appends the model's reply.
	HandleChat(ctx context.Context, conversationID, message string) (*Result, error)

	// History returns the conversation's messages and whether it exists.
	History(ctx context.Context, conversationID string) ([]models.Message, bool, error)
}

// Result is the outcome of a successful relay.
type Result struct {
	Reply   string
	History []models.Message
}
