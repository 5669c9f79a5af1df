package profanity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/qna-service/internal/apperr"
)

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected classified error, got %v", err)
	return appErr.Kind
}

func TestCensor_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("apiKey"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "a damn sentence", string(body))

		w.Write([]byte(`{
			"content": "a damn sentence",
			"bad_words_total": 1,
			"bad_words_list": [{"original": "damn", "word": "damn", "deviations": 0, "info": 2, "replacedLen": 4}],
			"censored_content": "a **** sentence"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	censored, err := client.Censor(context.Background(), "a damn sentence")
	require.NoError(t, err)
	assert.Equal(t, "a **** sentence", censored)
}

func TestCensor_ClientErrorIsFinal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key")
	_, err := client.Censor(context.Background(), "content")

	assert.Equal(t, apperr.KindUpstreamClient, kindOf(t, err))
	assert.Equal(t, int64(1), calls.Load(), "4xx answers must not be retried")
}

func TestCensor_ServerErrorRetriedThenClassified(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message": "overloaded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.Censor(context.Background(), "content")

	assert.Equal(t, apperr.KindUpstreamServer, kindOf(t, err))
	assert.Equal(t, int64(4), calls.Load(), "initial attempt plus three retries")
}

func TestCensor_ServerErrorRecovers(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"content": "ok", "bad_words_total": 0, "bad_words_list": [], "censored_content": "ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	censored, err := client.Censor(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", censored)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCensor_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := NewClient(srv.URL, "test-key")
	_, err := client.Censor(context.Background(), "content")

	assert.Equal(t, apperr.KindUpstreamTransport, kindOf(t, err))
}
