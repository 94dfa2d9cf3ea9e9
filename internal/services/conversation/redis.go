package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	redisinfra "github.com/deepgram/chatrelay/internal/infrastructure/redis"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:"

// RedisStore keeps each conversation as a Redis list of JSON encoded
// messages. A marker key records that a conversation exists even before its
// first message is appended.
type RedisStore struct {
	redisService *redisinfra.Service
}

func NewRedisStore(redisService *redisinfra.Service) *RedisStore {
	return &RedisStore{redisService: redisService}
}

func messagesKey(id string) string {
	return keyPrefix + id + ":messages"
}

func existsKey(id string) string {
	return keyPrefix + id + ":exists"
}

func (rs *RedisStore) GetOrCreate(ctx context.Context, id string) ([]models.Message, error) {
	if err := rs.redisService.Set(ctx, existsKey(id), 1, 0); err != nil {
		return nil, fmt.Errorf("failed to create conversation %q: %w", id, err)
	}
	return rs.load(ctx, id)
}

func (rs *RedisStore) Append(ctx context.Context, id string, msgs ...models.Message) error {
	values := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
		values = append(values, string(data))
	}

	err := rs.redisService.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, existsKey(id), 1, 0)
		if len(values) > 0 {
			pipe.RPush(ctx, messagesKey(id), values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append to conversation %q: %w", id, err)
	}
	return nil
}

func (rs *RedisStore) Snapshot(ctx context.Context, id string) ([]models.Message, bool, error) {
	n, err := rs.redisService.Exists(ctx, existsKey(id))
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up conversation %q: %w", id, err)
	}
	if n == 0 {
		return nil, false, nil
	}

	history, err := rs.load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return history, true, nil
}

func (rs *RedisStore) load(ctx context.Context, id string) ([]models.Message, error) {
	raw, err := rs.redisService.LRange(ctx, messagesKey(id), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %q: %w", id, err)
	}

	history := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message in conversation %q: %w", id, err)
		}
		history = append(history, msg)
	}
	return history, nil
}
