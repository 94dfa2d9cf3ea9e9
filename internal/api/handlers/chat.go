package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/deepgram/chatrelay/internal/domain/chat/models"
	"github.com/deepgram/chatrelay/internal/services/chat"
	"github.com/deepgram/chatrelay/pkg/httpext"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
)

const (
	detailUpstreamUnavailable = "Failed to communicate with AI service."
	detailUpstreamRejected    = "AI service returned an error: %s"
	detailEmptyReply          = "Received an empty response from the AI service."
	detailUnexpected          = "An unexpected error occurred."
)

// use a single instance of Validate, it caches struct info
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ChatRequest is the body of POST /chat. Message is a pointer so a missing
// field can be told apart from an empty one.
type ChatRequest struct {
	ConversationID string  `json:"conversation_id" validate:"required"`
	Message        *string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply               string           `json:"reply"`
	ConversationHistory []models.Message `json:"conversation_history"`
}

// decodeSingleJSON decodes exactly one JSON value from body into v. Anything
// after that value other than whitespace is an error.
func decodeSingleJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// HandleChat handles POST /chat
func HandleChat(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	var req ChatRequest
	if err := decodeSingleJSON(r.Body, &req); err != nil {
		logger.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
			Error:  "Invalid request format",
			Detail: err.Error(),
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		logger.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonErrorWithDetails(w, http.StatusUnprocessableEntity, httpext.ErrorResponse{
			Error:  "Invalid request",
			Detail: describeValidationError(err),
		})
		return
	}

	logger.Info().
		Str("conversation_id", req.ConversationID).
		Int("message_length", len(*req.Message)).
		Msg("Received chat request")

	result, err := chatService.HandleChat(r.Context(), req.ConversationID, *req.Message)
	if err != nil {
		logger.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("Failed to process chat")
		writeChatError(w, err)
		return
	}

	httpext.JsonResponse(w, http.StatusOK, ChatResponse{
		Reply:               result.Reply,
		ConversationHistory: result.History,
	})
}

func writeChatError(w http.ResponseWriter, err error) {
	var rejected *chat.UpstreamRejectedError

	detail := detailUnexpected
	switch {
	case errors.Is(err, chat.ErrUpstreamUnavailable):
		detail = detailUpstreamUnavailable
	case errors.As(err, &rejected):
		detail = fmt.Sprintf(detailUpstreamRejected, rejected.ErrorList())
	case errors.Is(err, chat.ErrEmptyUpstreamReply):
		detail = detailEmptyReply
	}

	httpext.JsonErrorWithDetails(w, http.StatusInternalServerError, httpext.ErrorResponse{
		Error:  "Failed to process chat",
		Detail: detail,
	})
}

func describeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
