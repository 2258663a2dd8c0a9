package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
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
)

func newBackend(t *testing.T) (*database.MemoryStore, string) {
	t.Helper()
	store := database.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(handler.New(store, config.Config{}, logger).SetupRouter())
	t.Cleanup(srv.Close)
	return store, srv.URL + "/api/tweets"
}

// run executes the CLI and returns stdout.
func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--api-url", apiURL, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList_OrdersMostRecentFirst(t *testing.T) {
	store, apiURL := newBackend(t)
	ctx := context.Background()
	base := time.Date(2025, time.September, 22, 14, 0, 0, 0, time.UTC)
	_, err := store.Create(ctx, model.Record{Author: "Alice", Message: "first", CreatedAt: base})
	require.NoError(t, err)
	_, err = store.Create(ctx, model.Record{Author: "Bob", Message: "second", CreatedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)

	out, err := run(t, apiURL, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "AUTHOR")
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestList_JSON(t *testing.T) {
	store, apiURL := newBackend(t)
	_, err := store.Create(context.Background(), model.Record{Author: "Alice", Message: "hi", CreatedAt: time.Now()})
	require.NoError(t, err)

	out, err := run(t, apiURL, "list", "--format", "json")
	require.NoError(t, err)

	var tweets []model.Tweet
	require.NoError(t, json.Unmarshal([]byte(out), &tweets))
	require.Len(t, tweets, 1)
	assert.Equal(t, "Alice", tweets[0].Author)
}

func TestList_Empty(t *testing.T) {
	_, apiURL := newBackend(t)

	out, err := run(t, apiURL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tweets found")
}

func TestPost_ThenGetUpdateDelete(t *testing.T) {
	_, apiURL := newBackend(t)

	out, err := run(t, apiURL, "post", "--author", "Carol", "--message", "posted from cli", "-f", "json")
	require.NoError(t, err)
	var created model.Tweet
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "posted from cli", created.Message)

	id := strconv.FormatInt(created.ID, 10)

	out, err = run(t, apiURL, "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "posted from cli")

	out, err = run(t, apiURL, "update", id, "-a", "Carol", "-m", "edited")
	require.NoError(t, err)
	assert.Contains(t, out, "edited")

	out, err = run(t, apiURL, "delete", id)
	require.NoError(t, err)
	assert.Equal(t, "Deleted tweet "+id+"\n", out)

	_, err = run(t, apiURL, "get", id)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestPost_InvalidFormIsRejectedLocally(t *testing.T) {
	store, apiURL := newBackend(t)

	_, err := run(t, apiURL, "post", "--author", strings.Repeat("a", model.MaxAuthorLength+1), "--message", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), model.MsgAuthorTooLong)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthorAndSearch(t *testing.T) {
	store, apiURL := newBackend(t)
	ctx := context.Background()
	for _, r := range []model.Record{
		{Author: "Alice Johnson", Message: "Coffee time", CreatedAt: time.Now()},
		{Author: "Bob Smith", Message: "tea please", CreatedAt: time.Now()},
	} {
		_, err := store.Create(ctx, r)
		require.NoError(t, err)
	}

	out, err := run(t, apiURL, "author", "alice johnson")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee time")
	assert.NotContains(t, out, "tea please")

	out, err = run(t, apiURL, "search", "TEA")
	require.NoError(t, err)
	assert.Contains(t, out, "tea please")
	assert.NotContains(t, out, "Coffee time")
}

func TestInvalidArguments(t *testing.T) {
	_, apiURL := newBackend(t)

	_, err := run(t, apiURL, "get", "abc")
	assert.ErrorContains(t, err, "invalid tweet id")

	_, err = run(t, apiURL, "list", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL + "/api/tweets"
	srv.Close()

	_, err := run(t, apiURL, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnreachable)
	assert.Equal(t, client.MsgUnreachable, err.Error())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "ありがと...", truncateString("ありがとうございます", 7))
}
