package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// DefaultLimit caps a search result page.
const DefaultLimit = 50

// LocalStore is the exercises table. *storage.DB satisfies it.
type LocalStore interface {
	SearchExercises(ctx context.Context, term, bodyPart, equipment string, limit int) ([]models.Exercise, error)
	DistinctExerciseValues(ctx context.Context, filterType string) ([]string, error)
}

// RemoteStore is the catalog proxy. *Remote satisfies it.
type RemoteStore interface {
	Search(ctx context.Context, term, bodyPart, equipment string) ([]models.Exercise, error)
	FilterValues(ctx context.Context, filterType string) ([]string, error)
}

// Client searches the exercise catalog: local table first, remote proxy
// as fallback when the table yields nothing, with a per-client result
// cache keyed by query.
type Client struct {
	local  LocalStore
	remote RemoteStore
	cache  *Cache
	log    *slog.Logger
}

// NewClient creates a catalog client. The cache is owned by the client
// instance; there is no process-wide state.
func NewClient(local LocalStore, remote RemoteStore, log *slog.Logger) *Client {
	return &Client{
		local:  local,
		remote: remote,
		cache:  NewCache(),
		log:    log,
	}
}

// normalizeFilter maps the UI's "show everything" sentinel to no filter.
func normalizeFilter(v string) string {
	if v == "all" {
		return ""
	}
	return strings.TrimSpace(v)
}

// Search finds catalog entries matching the term (case-insensitive
// substring on name, two characters minimum) and the bodyPart/equipment
// equality filters. With no filters at all it returns an unfiltered page
// up to limit.
func (c *Client) Search(ctx context.Context, term, bodyPart, equipment string, limit int) ([]models.Exercise, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	bodyPart = normalizeFilter(bodyPart)
	equipment = normalizeFilter(equipment)

	key := Key(term, bodyPart, equipment)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	exercises, err := c.local.SearchExercises(ctx, term, bodyPart, equipment, limit)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		c.log.Info("catalog: local table empty for query, falling back to remote",
			"term", term, "body_part", bodyPart, "equipment", equipment)
		exercises, err = c.remote.Search(ctx, term, bodyPart, equipment)
		if err != nil {
			return nil, err
		}
		if len(exercises) > limit {
			exercises = exercises[:limit]
		}
	}

	c.cache.Put(key, exercises)
	return exercises, nil
}

// FilterValues returns the option list for a filter ("bodyPart" or
// "equipment"): distinct local values, or the remote list when the local
// table is empty.
func (c *Client) FilterValues(ctx context.Context, filterType string) ([]string, error) {
	values, err := c.local.DistinctExerciseValues(ctx, filterType)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		return values, nil
	}
	return c.remote.FilterValues(ctx, filterType)
}
