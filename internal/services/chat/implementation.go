package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	"github.com/deepgram/chatrelay/internal/infrastructure/workersai"
	"github.com/deepgram/chatrelay/internal/services/conversation"
	"github.com/rs/zerolog/log"
)

// Completer runs a conversation through the model.
type Completer interface {
	Run(ctx context.Context, messages []models.Message) (*workersai.RunResponse, error)
}

type Implementation struct {
	store    conversation.Store
	locker   *conversation.Locker
	upstream Completer
}

func NewService(store conversation.Store, upstream Completer) (*Implementation, error) {
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if upstream == nil {
		return nil, errors.New("upstream completer is required")
	}

	return &Implementation{
		store:    store,
		locker:   conversation.NewLocker(),
		upstream: upstream,
	}, nil
}

// HandleChat relays one user turn. The user message stays in the history
// even when the relay fails afterwards.
func (s *Implementation) HandleChat(ctx context.Context, conversationID, message string) (*Result, error) {
	unlock := s.locker.Lock(conversationID)
	defer unlock()

	if _, err := s.store.GetOrCreate(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	if err := s.store.Append(ctx, conversationID, models.UserMessage(message)); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	history, err := s.snapshot(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("conversation_id", conversationID).
		Int("message_count", len(history)).
		Msg("Relaying conversation to upstream")

	resp, err := s.upstream.Run(ctx, history)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", conversationID).Msg("Error calling upstream")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if !resp.Success {
		rejected := &UpstreamRejectedError{Errors: resp.Errors}
		log.Warn().
			Str("conversation_id", conversationID).
			Str("errors", rejected.ErrorList()).
			Msg("Upstream reported failure")
		return nil, rejected
	}

	reply := strings.TrimSpace(resp.Reply())
	if reply == "" {
		log.Warn().Str("conversation_id", conversationID).Msg("Upstream returned an empty reply")
		return nil, ErrEmptyUpstreamReply
	}

	assistantMessage := models.AssistantMessage(reply)
	if err := s.store.Append(ctx, conversationID, assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	history, err = s.snapshot(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Reply:   reply,
		History: history,
	}, nil
}

func (s *Implementation) snapshot(ctx context.Context, conversationID string) ([]models.Message, error) {
	history, _, err := s.store.Snapshot(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}
	return history, nil
}

func (s *Implementation) History(ctx context.Context, conversationID string) ([]models.Message, bool, error) {
	return s.store.Snapshot(ctx, conversationID)
}
