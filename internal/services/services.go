package services

import (
	"fmt"

	"github.com/deepgram/chatrelay/internal/config"
	"github.com/deepgram/chatrelay/internal/infrastructure/redis"
	"github.com/deepgram/chatrelay/internal/infrastructure/workersai"
	"github.com/deepgram/chatrelay/internal/services/chat"
	"github.com/deepgram/chatrelay/internal/services/conversation"
	"github.com/rs/zerolog/log"
)

type Services struct {
	chatService      chat.Service
	conversations    conversation.Store
	redisService     *redis.Service
	workersAIService *workersai.Service
}

// InitializeServices initializes all required services
func InitializeServices(cfg *config.Config) (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Redis is optional; conversations fall back to memory
	var redisService *redis.Service
	if cfg.Redis.Enabled() {
		svc, err := redis.NewService(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory conversation store")
		} else {
			redisService = svc
		}
	}
	conversations := conversation.NewStore(redisService)

	workersAIService := workersai.NewService(cfg.Cloudflare)

	chatService, err := chat.NewService(conversations, workersAIService)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}

	log.Info().Msg("All services initialized successfully")

	return &Services{
		chatService:      chatService,
		conversations:    conversations,
		redisService:     redisService,
		workersAIService: workersAIService,
	}, nil
}

// NewServices assembles Services from an existing chat service
func NewServices(chatService chat.Service) *Services {
	return &Services{chatService: chatService}
}

// GetChatService returns the chat service
func (s *Services) GetChatService() chat.Service {
	return s.chatService
}

// Close releases the connections held by the services
func (s *Services) Close() error {
	if s.redisService != nil {
		return s.redisService.Close()
	}
	return nil
}
