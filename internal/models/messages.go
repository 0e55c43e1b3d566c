package models

import "encoding/json"

// Message types exchanged over the websocket channel.
const (
	// inbound
	TypeJoin           = "join"
	TypeUpdateLanguage = "update-language"
	TypeSpeech         = "speech"
	TypePing           = "ping"

	// outbound
	TypeUsersList   = "users-list"
	TypeUserJoined  = "user-joined"
	TypeUserLeft    = "user-left"
	TypeTranslation = "translation"
	TypePong        = "pong"
)

// ClientMessage is the envelope for every inbound websocket message.
// The payload is decoded per type by the gateway.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage is the envelope for every outbound websocket message.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// JoinPayload creates or replaces membership for the sending connection.
type JoinPayload struct {
	Name           string `json:"name"`
	TargetLanguage string `json:"targetLanguage"`
}

// UpdateLanguagePayload changes the sender's target language.
type UpdateLanguagePayload struct {
	TargetLanguage string `json:"targetLanguage"`
}

// SpeechPayload is one transcript fragment from the sending connection.
type SpeechPayload struct {
	OriginalText string `json:"originalText"`
	IsFinal      bool   `json:"isFinal"`
}

// UserJoinedPayload is broadcast to existing members on a new join.
type UserJoinedPayload struct {
	User  Participant   `json:"user"`
	Users []Participant `json:"users"`
}

// UserLeftPayload is broadcast to remaining members on a leave.
type UserLeftPayload struct {
	UserID string        `json:"userId"`
	Users  []Participant `json:"users"`
}
