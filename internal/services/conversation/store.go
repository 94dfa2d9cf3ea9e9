// Package conversation keeps the append-only message history of every
// conversation the relay has seen.
package conversation

import (
	"context"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	redisinfra "github.com/deepgram/chatrelay/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

// Store defines the operations the relay needs from conversation storage.
// Returned slices are copies; mutating them never changes stored history.
type Store interface {
	// GetOrCreate returns the history for id, creating an empty
	// conversation when id has not been seen before.
	GetOrCreate(ctx context.Context, id string) ([]models.Message, error)

	// Append adds messages to the end of the conversation, in order.
	Append(ctx context.Context, id string, msgs ...models.Message) error

	// Snapshot returns the current history and whether the conversation exists.
	Snapshot(ctx context.Context, id string) ([]models.Message, bool, error)
}

// NewStore returns a Redis backed store when redisService is available and
// an in-memory store otherwise.
func NewStore(redisService *redisinfra.Service) Store {
	if redisService == nil {
		log.Info().Msg("Using in-memory conversation store")
		return NewMemoryStore()
	}

	log.Info().Msg("Using Redis conversation store")
	return NewRedisStore(redisService)
}
