package models

import (
	"slices"
	"time"
)

// JournalEntry is an append-only reflection. It is never mutated after creation.
type JournalEntry struct {
	Date     time.Time `json:"date" validate:"required"`
	Question string    `json:"question" validate:"notblank"`
	Response string    `json:"response" validate:"notblank"`
	Context  []string  `json:"context,omitempty"` // the wisdoms that prompted the question
}

// ChatMessage is one turn of a conversation with the companion.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

func (e JournalEntry) clone() JournalEntry {
	e.Context = slices.Clone(e.Context)
	return e
}
