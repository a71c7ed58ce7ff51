// Package similarity provides a client for the external semantic-similarity
// service. The service is best-effort: callers must treat any error as
// "no similarity available" and continue with heuristic scores.
package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each similarity request. The service is an optional
// enrichment, so the timeout stays in single-digit seconds.
const DefaultTimeout = 8 * time.Second

const (
	sentencePath = "/embeddings/sentence"
	lexicalPath  = "/embeddings/tfidf"
)

// Document is one opportunity document to score against the resume text.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Error represents a failure talking to the similarity service.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("similarity error for %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("similarity error for %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client calls the similarity service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the service at baseURL. A zero timeout uses
// DefaultTimeout; a nil logger disables logging.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type scoresRequest struct {
	ResumeText string     `json:"resumeText"`
	Jobs       []Document `json:"jobs"`
}

type scoreEntry struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
}

type scoresResponse struct {
	Scores []scoreEntry `json:"scores"`
}

// Scores requests a similarity score per document for the given resume text.
// It tries the sentence-embedding endpoint first and falls back to the
// lexical endpoint on failure. Returned values are clamped to [0,1] and keyed
// by document ID; documents the service did not score are absent from the map.
func (c *Client) Scores(ctx context.Context, resumeText string, docs []Document) (map[string]float64, error) {
	if len(docs) == 0 {
		return map[string]float64{}, nil
	}

	req := scoresRequest{ResumeText: resumeText, Jobs: docs}

	scores, err := c.post(ctx, sentencePath, req)
	if err != nil {
		c.logger.Debug("sentence similarity failed, falling back to lexical",
			zap.Error(err))
		scores, err = c.post(ctx, lexicalPath, req)
		if err != nil {
			return nil, err
		}
	}

	result := make(map[string]float64, len(scores))
	for _, s := range scores {
		sim := s.Similarity
		if sim < 0 {
			sim = 0
		}
		if sim > 1 {
			sim = 1
		}
		result[s.ID] = sim
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload scoresRequest) ([]scoreEntry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{Endpoint: path, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var parsed scoresResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Endpoint: path, Message: "failed to decode response", Cause: err}
	}

	return parsed.Scores, nil
}
