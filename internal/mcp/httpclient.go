package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale, which also
// carries the caller's identity). The userID parameters are ignored;
// the server scopes responses to the tailnet identity.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, _ int) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := c.get(ctx, "/api/v1/workouts", nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id uuid.UUID, _ int) (*models.Workout, error) {
	var workout models.Workout
	if err := c.get(ctx, "/api/v1/workouts/"+id.String(), nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (c *HTTPClient) ListHistory(ctx context.Context, _ int) ([]models.CompletedSession, error) {
	var sessions []models.CompletedSession
	if err := c.get(ctx, "/api/v1/history", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListHistorySince filters client-side; the REST API returns the full
// history ordered newest first.
func (c *HTTPClient) ListHistorySince(ctx context.Context, userID int, since time.Time) ([]models.CompletedSession, error) {
	sessions, err := c.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []models.CompletedSession
	for _, s := range sessions {
		if !s.CompletedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *HTTPClient) SearchExercises(ctx context.Context, term, bodyPart, equipment string, _ int) ([]models.Exercise, error) {
	params := url.Values{}
	if term != "" {
		params.Set("term", term)
	}
	if bodyPart != "" {
		params.Set("bodyPart", bodyPart)
	}
	if equipment != "" {
		params.Set("equipment", equipment)
	}

	var exercises []models.Exercise
	if err := c.get(ctx, "/api/v1/exercises/search", params, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
