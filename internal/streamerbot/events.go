package streamerbot

import (
	"encoding/json"
	"time"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// frame is any message read from the socket. Responses carry ID and Status,
// subscription pushes carry Event and Data, the greeting carries Info.
type frame struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status,omitempty"`
	Error  string          `json:"error,omitempty"`
	Event  *eventInfo      `json:"event,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Info   *helloInfo      `json:"info,omitempty"`
}

type eventInfo struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

type helloInfo struct {
	Authentication struct {
		Challenge string `json:"challenge"`
		Salt      string `json:"salt"`
	} `json:"authentication"`
}

type request struct {
	Request        string              `json:"request"`
	ID             string              `json:"id"`
	Action         *action             `json:"action,omitempty"`
	Args           map[string]string   `json:"args,omitempty"`
	Events         map[string][]string `json:"events,omitempty"`
	Authentication string              `json:"authentication,omitempty"`
}

type action struct {
	Name string `json:"name"`
}

type twitchChat struct {
	Message struct {
		MsgID       string `json:"msgId"`
		UserID      string `json:"userId"`
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		Channel     string `json:"channel"`
		Role        int    `json:"role"`
		Subscriber  bool   `json:"subscriber"`
		Message     string `json:"message"`
	} `json:"message"`
}

type youTubeChat struct {
	EventID string `json:"eventId"`
	Message string `json:"message"`
	User    struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		IsOwner     bool   `json:"isOwner"`
		IsModerator bool   `json:"isModerator"`
		IsSponsor   bool   `json:"isSponsor"`
	} `json:"user"`
}

// chatSubscriptions lists the events requested when a chat handler is set
func chatSubscriptions() map[string][]string {
	return map[string][]string{
		SourceTwitch:  {EventChatMessage, EventTwitchWhisper},
		SourceYouTube: {EventYouTubeChat},
	}
}

// decodeChat converts a subscription push into a chat message. ok is false
// for events that are not chat.
func decodeChat(f frame, receivedAt time.Time) (msg domain.ChatMessage, ok bool, err error) {
	if f.Event == nil {
		return msg, false, nil
	}

	switch {
	case f.Event.Source == SourceTwitch && (f.Event.Type == EventChatMessage || f.Event.Type == EventTwitchWhisper):
		var data twitchChat
		if err := json.Unmarshal(f.Data, &data); err != nil {
			return msg, false, err
		}
		m := data.Message
		username := m.DisplayName
		if username == "" {
			username = m.Username
		}
		return domain.ChatMessage{
			ID:      m.MsgID,
			Channel: m.Channel,
			User: domain.ChatUser{
				Platform: domain.PlatformTwitch,
				UserID:   m.UserID,
				Username: username,
				Roles:    twitchRoles(m.Role, m.Subscriber),
			},
			Text:       m.Message,
			Whisper:    f.Event.Type == EventTwitchWhisper,
			ReceivedAt: receivedAt,
		}, true, nil

	case f.Event.Source == SourceYouTube && f.Event.Type == EventYouTubeChat:
		var data youTubeChat
		if err := json.Unmarshal(f.Data, &data); err != nil {
			return msg, false, err
		}
		var roles []string
		if data.User.IsOwner {
			roles = append(roles, "owner")
		}
		if data.User.IsModerator {
			roles = append(roles, "moderator")
		}
		if data.User.IsSponsor {
			roles = append(roles, "subscriber")
		}
		return domain.ChatMessage{
			ID: data.EventID,
			User: domain.ChatUser{
				Platform: domain.PlatformYouTube,
				UserID:   data.User.ID,
				Username: data.User.Name,
				Roles:    roles,
			},
			Text:       data.Message,
			ReceivedAt: receivedAt,
		}, true, nil
	}
	return msg, false, nil
}

func twitchRoles(level int, subscriber bool) []string {
	var roles []string
	switch level {
	case TwitchRoleBroadcaster:
		roles = append(roles, "broadcaster")
	case TwitchRoleModerator:
		roles = append(roles, "mod")
	case TwitchRoleVIP:
		roles = append(roles, "vip")
	}
	if subscriber {
		roles = append(roles, "subscriber")
	}
	return roles
}
