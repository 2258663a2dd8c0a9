package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tweetboard/internal/client"
	"tweetboard/internal/config"
	"tweetboard/internal/database"
	"tweetboard/internal/handler"
	"tweetboard/internal/model"
	"tweetboard/internal/shell"
	"tweetboard/internal/timeline"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newBackend starts the REST API over a memory store.
func newBackend(t *testing.T) (*database.MemoryStore, string) {
	t.Helper()
	store := database.NewMemoryStore()
	srv := httptest.NewServer(handler.New(store, config.Config{}, discard).SetupRouter())
	t.Cleanup(srv.Close)
	return store, srv.URL + "/api/tweets"
}

func newUI(apiURL string) http.Handler {
	c := client.New(apiURL, client.WithLogger(discard), client.WithTimeout(2*time.Second))
	sh := shell.New(c, timeline.Orderer{Logger: discard}, discard)
	return New(sh, discard).Router()
}

func seed(t *testing.T, store database.Store, author, message string, at time.Time) {
	t.Helper()
	_, err := store.Create(context.Background(), model.Record{Author: author, Message: message, CreatedAt: at})
	require.NoError(t, err)
}

func postForm(ui http.Handler, target string, values url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	ui.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersOrderedTweets(t *testing.T) {
	store, apiURL := newBackend(t)
	base := time.Date(2025, time.September, 22, 14, 0, 0, 0, time.Local)
	seed(t, store, "Alice", "older tweet", base)
	seed(t, store, "Bob", "newer tweet", base.Add(time.Hour))

	ui := newUI(apiURL)
	w := httptest.NewRecorder()
	ui.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, htmxScript)
	assert.Contains(t, body, `id="tweet-form"`)
	assert.Contains(t, body, "280 characters remaining")

	newer, older := strings.Index(body, "newer tweet"), strings.Index(body, "older tweet")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older, "most recent tweet should be listed first")
}

func TestIndex_Empty(t *testing.T) {
	_, apiURL := newBackend(t)

	w := httptest.NewRecorder()
	newUI(apiURL).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, w.Body.String(), "No tweets yet.")
}

func TestIndex_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL + "/api/tweets"
	srv.Close()

	w := httptest.NewRecorder()
	newUI(apiURL).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, client.MsgUnreachable)
	assert.Contains(t, body, "Retry")
	assert.NotContains(t, body, "No tweets yet.")
}

func TestSubmit_HTMX(t *testing.T) {
	store, apiURL := newBackend(t)
	ui := newUI(apiURL)

	w := postForm(ui, "/tweets", url.Values{"author": {"Carol"}, "message": {"hello from the form"}}, true)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="app">`), "htmx requests get the #app fragment")
	assert.Contains(t, body, "hello from the form")
	assert.NotContains(t, body, `value="Carol"`, "form is cleared after a successful post")

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmit_RedirectsWithoutHTMX(t *testing.T) {
	_, apiURL := newBackend(t)

	w := postForm(newUI(apiURL), "/tweets", url.Values{"author": {"Dan"}, "message": {"plain form post"}}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSubmit_InvalidFormNeverReachesBackend(t *testing.T) {
	store, apiURL := newBackend(t)
	ui := newUI(apiURL)

	w := postForm(ui, "/tweets", url.Values{
		"author":  {strings.Repeat("a", model.MaxAuthorLength+1)},
		"message": {"keep me"},
	}, true)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, model.MsgAuthorTooLong)
	assert.Contains(t, body, "keep me", "entered values are kept")

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReload(t *testing.T) {
	store, apiURL := newBackend(t)
	ui := newUI(apiURL)

	w := httptest.NewRecorder()
	ui.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "added elsewhere")

	seed(t, store, "Erin", "added elsewhere", time.Now())

	w = postForm(ui, "/reload", url.Values{}, true)
	assert.Contains(t, w.Body.String(), "added elsewhere")

	// a second GET / does not reload
	seed(t, store, "Frank", "not yet visible", time.Now())
	w = httptest.NewRecorder()
	ui.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "not yet visible")
}

func TestHints(t *testing.T) {
	_, apiURL := newBackend(t)

	w := postForm(newUI(apiURL), "/form/hints", url.Values{
		"author":  {"Gina"},
		"message": {strings.Repeat("m", model.MaxMessageLength+1)},
	}, true)

	body := w.Body.String()
	assert.Contains(t, body, "-1 characters remaining")
	assert.Contains(t, body, model.MsgMessageTooLong)
	assert.NotContains(t, body, model.MsgAuthorTooLong)
}
