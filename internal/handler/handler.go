package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tweetboard/internal/config"
	"tweetboard/internal/database"
)

// Handler holds application dependencies
type Handler struct {
	Store  database.Store
	Config config.Config
	Logger *slog.Logger
}

// New creates a new Handler with the given dependencies
func New(store database.Store, cfg config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:  store,
		Config: cfg,
		Logger: logger,
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID)

	// REST API
	api := r.PathPrefix("/api/tweets").Subrouter()
	api.HandleFunc("", h.GetTweets).Methods("GET")
	api.HandleFunc("", h.CreateTweet).Methods("POST")
	api.HandleFunc("/search", h.SearchTweets).Methods("GET")
	api.HandleFunc("/author/{author}", h.GetTweetsByAuthor).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", h.GetTweet).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", h.UpdateTweet).Methods("PUT")
	api.HandleFunc("/{id:[0-9]+}", h.DeleteTweet).Methods("DELETE")

	return r
}

// HTTPHandler wraps the router with CORS for the configured origins.
func (h *Handler) HTTPHandler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   h.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS", "PUT"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:           300,
		AllowCredentials: true,
	})
	return c.Handler(h.SetupRouter())
}

type loggerKey struct{}

// requestID tags each request with an id (reusing X-Request-ID when sent) and
// stores a logger carrying it in the request context.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		logger := h.Logger.With("request_id", id, "remote", r.RemoteAddr)
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
