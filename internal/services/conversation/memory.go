package conversation

import (
	"context"
	"sync"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
)

// MemoryStore keeps conversations in process memory. Everything is lost on
// restart.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string][]models.Message),
	}
}

func (ms *MemoryStore) GetOrCreate(ctx context.Context, id string) ([]models.Message, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	history, exists := ms.conversations[id]
	if !exists {
		history = []models.Message{}
		ms.conversations[id] = history
	}
	return cloneMessages(history), nil
}

func (ms *MemoryStore) Append(ctx context.Context, id string, msgs ...models.Message) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	history, exists := ms.conversations[id]
	if !exists {
		history = []models.Message{}
	}
	ms.conversations[id] = append(history, msgs...)
	return nil
}

func (ms *MemoryStore) Snapshot(ctx context.Context, id string) ([]models.Message, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	history, exists := ms.conversations[id]
	if !exists {
		return nil, false, nil
	}
	return cloneMessages(history), true, nil
}

// Len returns the number of known conversations.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.conversations)
}

func cloneMessages(msgs []models.Message) []models.Message {
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}
