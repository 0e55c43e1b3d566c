// Package models defines the data structures shared across the server.
package models

import "time"

// Participant is a member of the room: one live connection, one entry.
type Participant struct {
	ID             string    `json:"id"`             // unique identifier, bound 1:1 to a connection
	Name           string    `json:"name"`           // display name, defaulted if the client sends none
	TargetLanguage string    `json:"targetLanguage"` // language incoming speech is translated into
	JoinedAt       time.Time `json:"joinedAt"`       // informational ordering only
}

// SpeechEvent is one transcript from a sender. Interim events (IsFinal=false)
// carry partial text that may still change; only final events are translated.
type SpeechEvent struct {
	ID       string `json:"id"` // correlation id, assigned by the gateway
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	IsFinal  bool   `json:"isFinal"`
}

// TranslationEvent is the personalized message delivered to a single
// recipient for one SpeechEvent. The sender never receives one for their
// own speech.
type TranslationEvent struct {
	EventID        string `json:"eventId"`
	SenderID       string `json:"senderId"`
	SenderName     string `json:"senderName"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"` // the recipient's target language
	IsFinal        bool   `json:"isFinal"`
}
