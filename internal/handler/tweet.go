package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tweetboard/internal/database"
	"tweetboard/internal/model"
)

// maxBodyBytes はリクエストボディの上限 (1MB)
const maxBodyBytes = 1 << 20

// GetTweets handles GET /api/tweets
// Ordering is left to the client.
func (h *Handler) GetTweets(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	log.Info("[GET /api/tweets] Request received")

	records, err := h.Store.List(r.Context())
	if err != nil {
		log.Error("[GET /api/tweets] ❌ Database error", "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	log.Info("[GET /api/tweets] ✅ Returned tweets", "count", len(records))
	writeJSON(w, http.StatusOK, toTweets(records))
}

// GetTweet handles GET /api/tweets/{id}
func (h *Handler) GetTweet(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		log.Info("[GET /api/tweets/{id}] ❌ Not Found", "id", id)
		writeError(w, http.StatusNotFound, "Tweet not found")
		return
	}
	if err != nil {
		log.Error("[GET /api/tweets/{id}] ❌ Database error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, rec.Tweet())
}

// CreateTweet handles POST /api/tweets
func (h *Handler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	log.Info("[POST /api/tweets] Request received")

	req, ok := h.decodeRequest(w, r, "[POST /api/tweets]")
	if !ok {
		return
	}

	// Set server-side controlled fields
	rec, err := h.Store.Create(r.Context(), model.Record{
		Author:    req.Author,
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Error("[POST /api/tweets] ❌ Database error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create tweet")
		return
	}

	log.Info("[POST /api/tweets] ✅ Created tweet", "id", rec.ID, "author", rec.Author)
	writeJSON(w, http.StatusCreated, rec.Tweet())
}

// UpdateTweet handles PUT /api/tweets/{id}
// The original date is kept.
func (h *Handler) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r, "[PUT /api/tweets/{id}]")
	if !ok {
		return
	}

	rec, err := h.Store.Update(r.Context(), id, req.Author, req.Message)
	if errors.Is(err, database.ErrNotFound) {
		log.Info("[PUT /api/tweets/{id}] ❌ Not Found", "id", id)
		writeError(w, http.StatusNotFound, "Tweet not found")
		return
	}
	if err != nil {
		log.Error("[PUT /api/tweets/{id}] ❌ Database error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update tweet")
		return
	}

	log.Info("[PUT /api/tweets/{id}] ✅ Updated tweet", "id", id)
	writeJSON(w, http.StatusOK, rec.Tweet())
}

// DeleteTweet handles DELETE /api/tweets/{id}
// Tweets are soft-deleted: the row stays with deleted_at set.
func (h *Handler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := h.Store.Delete(r.Context(), id, time.Now())
	if errors.Is(err, database.ErrNotFound) {
		log.Info("[DELETE /api/tweets/{id}] ❌ Not Found", "id", id)
		writeError(w, http.StatusNotFound, "Tweet not found")
		return
	}
	if err != nil {
		log.Error("[DELETE /api/tweets/{id}] ❌ Database error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete tweet")
		return
	}

	log.Info("[DELETE /api/tweets/{id}] ✅ Deleted successfully", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetTweetsByAuthor handles GET /api/tweets/author/{author}
func (h *Handler) GetTweetsByAuthor(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	author := mux.Vars(r)["author"]

	records, err := h.Store.ByAuthor(r.Context(), author)
	if err != nil {
		log.Error("[GET /api/tweets/author] ❌ Database error", "author", author, "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	log.Info("[GET /api/tweets/author] ✅ Returned tweets", "author", author, "count", len(records))
	writeJSON(w, http.StatusOK, toTweets(records))
}

// SearchTweets handles GET /api/tweets/search?q=
func (h *Handler) SearchTweets(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)

	values, present := r.URL.Query()["q"]
	if !present {
		log.Info("[GET /api/tweets/search] ❌ Bad Request: missing q")
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	q := values[0]

	records, err := h.Store.Search(r.Context(), q)
	if err != nil {
		log.Error("[GET /api/tweets/search] ❌ Database error", "q", q, "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	log.Info("[GET /api/tweets/search] ✅ Returned tweets", "q", q, "count", len(records))
	writeJSON(w, http.StatusOK, toTweets(records))
}

// decodeRequest reads and validates a TweetRequest body, writing the 400
// response itself on failure.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, route string) (model.TweetRequest, bool) {
	log := h.log(r)

	// リクエストボディサイズを1MBに制限
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info(route+" ❌ Bad Request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}

	if err := req.Validate(); err != nil {
		fields, _ := model.FieldErrors(err)
		log.Info(route+" ❌ Bad Request: validation failed", "fields", fields)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed",
			"fields": fields,
		})
		return req, false
	}

	return req, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tweet id")
		return 0, false
	}
	return id, true
}

func toTweets(records []model.Record) []model.Tweet {
	out := make([]model.Tweet, len(records))
	for i, rec := range records {
		out[i] = rec.Tweet()
	}
	return out
}
