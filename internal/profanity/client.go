// Package profanity calls the BadWords moderation API to censor free-text
// content before it is persisted.
package profanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/minhvu/qna-service/internal/apperr"
)

// Client is the outbound moderation API client. Transport-level failures
// and 5xx answers are retried with exponential backoff; a 4xx answer is
// final. Whatever survives the retry budget is classified into an apperr
// kind; the upstream status and body go to the log, never the caller's
// response.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string

	maxRetries uint64
}

// NewClient creates a moderation client for the given endpoint and API key.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		maxRetries: 3,
	}
}

type badWord struct {
	Original    string `json:"original"`
	Word        string `json:"word"`
	Deviations  int64  `json:"deviations"`
	Info        int64  `json:"info"`
	ReplacedLen int64  `json:"replacedLen"`
}

type badWordsResponse struct {
	Content         string    `json:"content"`
	BadWordsTotal   int64     `json:"bad_words_total"`
	BadWordsList    []badWord `json:"bad_words_list"`
	CensoredContent string    `json:"censored_content"`
}

type apiResponse struct {
	Message string `json:"message"`
}

// Censor submits content to the moderation API and returns the censored
// form.
func (c *Client) Censor(ctx context.Context, content string) (string, error) {
	var censored string

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(content))
		if err != nil {
			return apperr.Transport(err)
		}
		req.Header.Set("apiKey", c.apiKey)

		res, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(apperr.Transport(err))
		}
		defer res.Body.Close()

		if res.StatusCode >= http.StatusBadRequest {
			upstream := apperr.Upstream(res.StatusCode, readAPIMessage(res.Body))
			if res.StatusCode >= http.StatusInternalServerError {
				return retry.RetryableError(upstream)
			}
			return upstream
		}

		var body badWordsResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			return apperr.Transport(fmt.Errorf("decode response: %w", err))
		}
		censored = body.CensoredContent
		return nil
	})
	if err != nil {
		return "", err
	}

	return censored, nil
}

// readAPIMessage extracts the error message the API ships alongside non-2xx
// statuses. Falls back to the raw body when it is not the expected JSON.
func readAPIMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body apiResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return string(raw)
	}
	return body.Message
}
