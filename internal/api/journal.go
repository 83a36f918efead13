package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// DefaultRecentLimit is used when a listing is asked for a non-positive limit.
const DefaultRecentLimit = 5

// CreateEntry posts a new journal entry. Writes are not retried.
func (c *Client) CreateEntry(ctx context.Context, req model.CreateJournalEntryRequest) (*model.JournalEntry, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidRequest, err)
	}

	var created wireEntry
	if err := c.do(ctx, http.MethodPost, "/journal/entries", nil, req, http.StatusCreated, &created); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	entry := created.toModel()
	return &entry, nil
}

// UpdateEntry changes the fields set in req.
func (c *Client) UpdateEntry(ctx context.Context, id string, req model.UpdateJournalEntryRequest) (*model.JournalEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: journal entry id is required", common.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidRequest, err)
	}
	if req.Tags != nil {
		req.Tags = model.NormalizeTags(req.Tags)
		if req.Tags == nil {
			req.Tags = []string{}
		}
	}

	var updated wireEntry
	if err := c.do(ctx, http.MethodPut, "/journal/entries/"+url.PathEscape(id), nil, req, http.StatusOK, &updated); err != nil {
		return nil, fmt.Errorf("failed to update journal entry %s: %w", id, err)
	}

	entry := updated.toModel()
	return &entry, nil
}

// DeleteEntry removes an entry. The server answers 204.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: journal entry id is required", common.ErrInvalidRequest)
	}
	if err := c.do(ctx, http.MethodDelete, "/journal/entries/"+url.PathEscape(id), nil, nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", id, err)
	}
	return nil
}

// EntriesForTransit lists entries attached to one transit instance.
func (c *Client) EntriesForTransit(ctx context.Context, transitID string) ([]model.JournalEntry, error) {
	return c.entries(ctx, "/journal/entries/transit/"+url.PathEscape(transitID), nil)
}

// EntriesForTransitType lists entries for every occurrence of a transit type.
func (c *Client) EntriesForTransitType(ctx context.Context, transitTypeID string) ([]model.JournalEntry, error) {
	return c.entries(ctx, "/journal/entries/transit-type/"+url.PathEscape(transitTypeID), nil)
}

// EntriesForDate lists entries written about the calendar day containing day.
func (c *Client) EntriesForDate(ctx context.Context, day time.Time) ([]model.JournalEntry, error) {
	return c.entries(ctx, "/journal/entries/date/"+dates.Key(day), nil)
}

// RecentEntries lists the newest entries.
func (c *Client) RecentEntries(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	return c.entries(ctx, "/journal/entries/recent", limitQuery(limit))
}

// EntriesByTag lists entries carrying tag.
func (c *Client) EntriesByTag(ctx context.Context, tag string, limit int) ([]model.JournalEntry, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: tag is required", common.ErrInvalidRequest)
	}
	return c.entries(ctx, "/journal/entries/tag/"+url.PathEscape(tag), limitQuery(limit))
}

// SearchEntries runs a full-text search over entry content.
func (c *Client) SearchEntries(ctx context.Context, query string, limit int) ([]model.JournalEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", common.ErrInvalidRequest)
	}
	params := limitQuery(limit)
	params.Set("query", query)
	return c.entries(ctx, "/journal/entries/search", params)
}

func (c *Client) entries(ctx context.Context, path string, query url.Values) ([]model.JournalEntry, error) {
	var resp entriesResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}
	return toEntries(resp.Entries), nil
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}
