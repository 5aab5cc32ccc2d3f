package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

var (
	// ErrRemoteUnavailable is a transient catalog failure: network error
	// or an unexpected response from the proxy.
	ErrRemoteUnavailable = errors.New("catalog: remote unavailable")

	// ErrRateLimited means the upstream exercise database throttled the
	// request. Distinct from ErrRemoteUnavailable: the caller should
	// suggest waiting rather than treating it as an outage.
	ErrRateLimited = errors.New("catalog: rate limited, try again later")
)

// Remote calls the exercise-catalog proxy functions. The proxy fronts an
// ExerciseDB-style API and exposes two endpoints: a search taking
// {searchTerm, bodyPart, equipment} and a filter-list taking {type}.
type Remote struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemote creates a proxy client for the given base URL.
func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// wireExercise tolerates both field spellings the two catalog sources
// use: the remote API's camelCase and the table's snake_case.
type wireExercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Target           string   `json:"target"`
	BodyPart         string   `json:"bodyPart"`
	BodyPartSnake    string   `json:"body_part"`
	Equipment        string   `json:"equipment"`
	GifURL           string   `json:"gifUrl"`
	GifURLSnake      string   `json:"gif_url"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	SecondarySnake   []string `json:"secondary_muscles"`
	Instructions     []string `json:"instructions"`
}

func (w wireExercise) normalize() models.Exercise {
	e := models.Exercise{
		ID:               w.ID,
		Name:             w.Name,
		Target:           w.Target,
		BodyPart:         w.BodyPart,
		Equipment:        w.Equipment,
		GifURL:           w.GifURL,
		SecondaryMuscles: w.SecondaryMuscles,
		Instructions:     w.Instructions,
	}
	if e.BodyPart == "" {
		e.BodyPart = w.BodyPartSnake
	}
	if e.GifURL == "" {
		e.GifURL = w.GifURLSnake
	}
	if len(e.SecondaryMuscles) == 0 {
		e.SecondaryMuscles = w.SecondarySnake
	}
	return e
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
	BodyPart   string `json:"bodyPart,omitempty"`
	Equipment  string `json:"equipment,omitempty"`
}

type searchResponse struct {
	Exercises []wireExercise `json:"exercises"`
	Error     string         `json:"error"`
}

type filtersRequest struct {
	Type string `json:"type"`
}

type filtersResponse struct {
	Data  []string `json:"data"`
	Error string   `json:"error"`
}

// Search queries the proxy's search function and normalizes the result
// shape to the local schema.
func (r *Remote) Search(ctx context.Context, term, bodyPart, equipment string) ([]models.Exercise, error) {
	var resp searchResponse
	err := r.post(ctx, "/search-exercises", searchRequest{
		SearchTerm: strings.TrimSpace(term),
		BodyPart:   bodyPart,
		Equipment:  equipment,
	}, &resp)
	if err != nil {
		return nil, err
	}
	// the proxy reports upstream throttling in-band with a 200
	if resp.Error != "" {
		if strings.Contains(strings.ToLower(resp.Error), "rate limit") {
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, resp.Error)
	}

	exercises := make([]models.Exercise, 0, len(resp.Exercises))
	for _, w := range resp.Exercises {
		exercises = append(exercises, w.normalize())
	}
	return exercises, nil
}

// FilterValues queries the proxy's filter-list function. filterType is
// "bodyPart" or "equipment".
func (r *Remote) FilterValues(ctx context.Context, filterType string) ([]string, error) {
	var resp filtersResponse
	if err := r.post(ctx, "/get-exercise-filters", filtersRequest{Type: filterType}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, resp.Error)
	}
	return resp.Data, nil
}

func (r *Remote) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("catalog: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("catalog: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: %s returned %d", ErrRemoteUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", ErrRemoteUnavailable, path, err)
	}
	return nil
}
