package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// PromptType classifies which gateway operation produced a history entry.
type PromptType string

const (
	PromptJobSearch          PromptType = "Job Search"
	PromptImageGeneration    PromptType = "Image Generation"
	PromptAudioSummary       PromptType = "Audio Summary"
	PromptCareerAvailability PromptType = "Career Availability"
)

// PromptHistoryItem records one exact prompt sent to the AI provider. This is
// an audit trail, not a cache: repeated identical queries re-log. Entries are
// never mutated after creation.
type PromptHistoryItem struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      PromptType     `json:"type"`
	Prompt    string         `json:"prompt"`
	Query     HistoryPayload `json:"query"`
}

// HistoryPayload is the variant context stored alongside a prompt: the full
// search query, just the career field, or the summarized job count.
type HistoryPayload struct {
	CareerField string `json:"careerField,omitempty"`
	Location    string `json:"location,omitempty"`
	JobCount    int    `json:"jobCount,omitempty"`
}

func NewPromptHistoryItem(t PromptType, prompt string, payload HistoryPayload) PromptHistoryItem {
	return PromptHistoryItem{
		ID:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Timestamp: time.Now().UTC(),
		Type:      t,
		Prompt:    prompt,
		Query:     payload,
	}
}
