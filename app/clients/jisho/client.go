package jisho

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Jisho API root
const DefaultBaseURL = "https://jisho.org/api/v1"

// ErrInvalidResponse is returned when a response is valid JSON without a "data" array
var ErrInvalidResponse = errors.New("invalid response")

// Client implements integration with Jisho words search API
// docs: https://jisho.org/forum/54fefc1f6e73340b1f160000-is-there-any-kind-of-search-api
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	context   context.Context
}

// Search fetches entries matching query.
// Entries which can't be decoded are dropped and counted in SearchResult.Skipped.
func (c Client) Search(query string) (SearchResult, error) {
	var result SearchResult
	req, err := http.NewRequest(
		http.MethodGet, strings.TrimSuffix(c.baseURL, "/")+"/search/words", nil,
	)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	if c.context != nil {
		req = req.WithContext(c.context)
	}
	params := req.URL.Query()
	params.Add("keyword", query)
	req.URL.RawQuery = params.Encode()

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	log.Debug().Str("request_id", requestID).Str("url", req.URL.String()).Msg("search jisho")

	response, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("fetch jisho.org: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		log.Error().
			Str("request_id", requestID).
			Str("status", response.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from jisho API")
		return result, fmt.Errorf("unsuccessful API response %v", response.StatusCode)
	}
	if !json.Valid(body) {
		return result, errors.New("unmarshal response: body is not valid JSON")
	}
	return decodeResult(body, requestID)
}

func decodeResult(body []byte, requestID string) (SearchResult, error) {
	var result SearchResult
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return result, fmt.Errorf("%w: top level is not an object", ErrInvalidResponse)
	}
	data, ok := envelope["data"]
	if !ok {
		return result, fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return result, fmt.Errorf("%w: data is not an array", ErrInvalidResponse)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result.Entries = make([]Entry, 0, len(items))
	for i, item := range items {
		var entry Entry
		if err := json.Unmarshal(item, &entry); err != nil {
			log.Debug().
				Err(err).
				Str("request_id", requestID).
				Int("index", i).
				Msg("skip malformed entry")
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// NewClient creates Client with default HTTP client
func NewClient(ctx context.Context, baseURL string, userAgent string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{baseURL: baseURL, userAgent: userAgent, client: http.DefaultClient, context: ctx}
}
