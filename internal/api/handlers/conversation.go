package handlers

import (
	"net/http"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	"github.com/deepgram/chatrelay/internal/services/chat"
	"github.com/deepgram/chatrelay/pkg/httpext"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

type ConversationResponse struct {
	ConversationID      string           `json:"conversation_id"`
	ConversationHistory []models.Message `json:"conversation_history"`
}

// HandleGetConversation handles GET /conversations/{conversation_id}
func HandleGetConversation(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["conversation_id"]

	history, exists, err := chatService.History(r.Context(), id)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("conversation_id", id).Msg("Failed to load conversation")
		httpext.JsonErrorWithDetails(w, http.StatusInternalServerError, httpext.ErrorResponse{
			Error:  "Failed to load conversation",
			Detail: detailUnexpected,
		})
		return
	}
	if !exists {
		httpext.JsonError(w, "Conversation not found", http.StatusNotFound)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, ConversationResponse{
		ConversationID:      id,
		ConversationHistory: history,
	})
}
