package model

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyContent is returned when a journal entry has no text.
var ErrEmptyContent = errors.New("journal entry content cannot be empty")

// JournalEntry is user-authored text attached to a transit or a transit type.
// The server owns entries; the client only holds read copies.
type JournalEntry struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	TransitID     string
	TransitTypeID string
	Content       string
	Mood          string
	Tags          []string
}

// CreateJournalEntryRequest is the payload for creating an entry.
type CreateJournalEntryRequest struct {
	TransitID     string   `json:"transitId"`
	TransitTypeID string   `json:"transitTypeId"`
	Content       string   `json:"content"`
	Mood          string   `json:"mood,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Normalize trims fields and cleans the tag list.
func (r *CreateJournalEntryRequest) Normalize() {
	r.TransitID = strings.TrimSpace(r.TransitID)
	r.TransitTypeID = strings.TrimSpace(r.TransitTypeID)
	r.Content = strings.TrimSpace(r.Content)
	r.Mood = strings.TrimSpace(r.Mood)
	r.Tags = NormalizeTags(r.Tags)
}

// Validate checks that the request can be sent.
func (r *CreateJournalEntryRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	if strings.TrimSpace(r.TransitID) == "" && strings.TrimSpace(r.TransitTypeID) == "" {
		return errors.New("journal entry needs a transit or a transit type")
	}
	return nil
}

// UpdateJournalEntryRequest carries the fields to change. Nil fields are left alone.
type UpdateJournalEntryRequest struct {
	Content *string  `json:"content,omitempty"`
	Mood    *string  `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Validate rejects updates that would blank the entry or change nothing.
func (r *UpdateJournalEntryRequest) Validate() error {
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return ErrEmptyContent
	}
	if r.Content == nil && r.Mood == nil && r.Tags == nil {
		return errors.New("nothing to update")
	}
	return nil
}

// NormalizeTags trims, drops empty values and removes duplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SplitTags parses a comma-separated tag string.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
