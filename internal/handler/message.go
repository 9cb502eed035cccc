package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// MessageSubmitter accepts decoded chat messages for asynchronous handling
type MessageSubmitter interface {
	Submit(ctx context.Context, msg domain.ChatMessage) error
}

// HandleMessageRequest is a decoded chat event pushed by a chat source
type HandleMessageRequest struct {
	ID         string   `json:"id"`
	Platform   string   `json:"platform" validate:"required,platform"`
	PlatformID string   `json:"platform_id" validate:"required"`
	Username   string   `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Channel    string   `json:"channel" validate:"max=100"`
	Roles      []string `json:"roles" validate:"max=20,dive,max=50"`
	Text       string   `json:"text" validate:"required,max=500"`
	Whisper    bool     `json:"whisper"`
}

// HandleMessageResponse acknowledges a queued message
type HandleMessageResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
	RequestID string `json:"request_id,omitempty"`
}

// ToChatMessage converts the request into the domain message
func (req HandleMessageRequest) ToChatMessage(receivedAt time.Time) domain.ChatMessage {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	return domain.ChatMessage{
		ID:      id,
		Channel: req.Channel,
		User: domain.ChatUser{
			Platform: strings.ToLower(req.Platform),
			UserID:   req.PlatformID,
			Username: req.Username,
			Roles:    req.Roles,
		},
		Text:       req.Text,
		Whisper:    req.Whisper,
		ReceivedAt: receivedAt,
	}
}

// HandleMessageHandler queues an inbound chat message for the command pipeline.
// Replies are delivered through the chat senders, not the HTTP response.
// @Summary Handle chat message
// @Description Queue a chat message for command dispatch
// @Tags message
// @Accept json
// @Produce json
// @Param request body HandleMessageRequest true "Message details"
// @Success 202 {object} HandleMessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/message/handle [post]
func HandleMessageHandler(submitter MessageSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req HandleMessageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Handle message"); err != nil {
			return
		}

		msg := req.ToChatMessage(time.Now().UTC())
		if err := submitter.Submit(r.Context(), msg); err != nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgQueueFull)
			return
		}

		log.Debug(LogMsgMessageQueued, "message_id", msg.ID, "platform", msg.User.Platform, "username", msg.User.Username)
		respondJSON(w, http.StatusAccepted, HandleMessageResponse{
			Message:   MsgMessageQueued,
			MessageID: msg.ID,
			RequestID: logger.GetRequestID(r.Context()),
		})
	}
}
