// Package web serves the single-page tweet UI. Pages are rendered on the server
// with gomponents; htmx swaps the #app region after form posts and retries.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	g "maragu.dev/gomponents"

	"tweetboard/internal/client"
	"tweetboard/internal/form"
	"tweetboard/internal/shell"
)

// Server renders the shell's state.
type Server struct {
	Shell  *shell.Shell
	Logger *slog.Logger
}

// New returns a Server for sh.
func New(sh *shell.Shell, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Shell: sh, Logger: logger}
}

// Router configures the UI routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.index).Methods("GET")
	r.HandleFunc("/tweets", s.list).Methods("GET")
	r.HandleFunc("/tweets", s.submit).Methods("POST")
	r.HandleFunc("/reload", s.reload).Methods("POST")
	r.HandleFunc("/form/hints", s.hints).Methods("POST")
	return r
}

// index loads the tweets on first render.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if err := s.Shell.EnsureLoaded(r.Context()); err != nil {
		s.Logger.Info("[GET /] ❌ Initial load failed", "error", err)
	}
	s.render(w, http.StatusOK, Page(s.Shell.View(), formState{}))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, TweetList(s.Shell.View()))
}

// submit posts the form. Validation and transport errors are rendered inline
// with the entered values kept; success clears the form.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	fs := formState{Form: form.Form{
		Author:  r.FormValue("author"),
		Message: r.FormValue("message"),
	}}

	created, err := s.Shell.Submit(r.Context(), fs.Form)

	var verr *form.ValidationError
	switch {
	case err == nil:
		s.Logger.Info("[POST /tweets] ✅ Tweet posted", "id", created.ID)
		fs.Form.Reset()
	case errors.As(err, &verr):
		s.Logger.Info("[POST /tweets] ❌ Invalid form", "fields", verr.Fields)
		fs.Fields = verr.Fields
	case errors.Is(err, shell.ErrSubmitInFlight):
		fs.Error = "A tweet is already being posted. Please wait."
	default:
		s.Logger.Error("[POST /tweets] ❌ Failed to post tweet", "error", err)
		fs.Error = client.Message(err)
	}

	if !isHTMX(r) && err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderApp(w, r, fs)
}

// reload refetches the list.
func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Shell.Reload(r.Context()); err != nil {
		s.Logger.Info("[POST /reload] ❌ Reload failed", "error", err)
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderApp(w, r, formState{})
}

// hints re-renders the counter and length errors while typing.
func (s *Server) hints(w http.ResponseWriter, r *http.Request) {
	f := form.Form{Author: r.FormValue("author"), Message: r.FormValue("message")}
	s.render(w, http.StatusOK, Hints(f, nil))
}

func (s *Server) renderApp(w http.ResponseWriter, r *http.Request, fs formState) {
	v := s.Shell.View()
	if isHTMX(r) {
		s.render(w, http.StatusOK, App(v, fs))
		return
	}
	s.render(w, http.StatusOK, Page(v, fs))
}

func (s *Server) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		s.Logger.Error("❌ Failed to render page", "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
