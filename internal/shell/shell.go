// Package shell owns the displayed tweet collection and the loading, submitting
// and error flags that front ends render.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"tweetboard/internal/client"
	"tweetboard/internal/form"
	"tweetboard/internal/model"
	"tweetboard/internal/timeline"
)

// ErrSubmitInFlight is returned when a submission is attempted while another is pending.
var ErrSubmitInFlight = errors.New("a tweet is already being submitted")

// TweetService is the part of the transport adapter the shell needs.
type TweetService interface {
	ListTweets(ctx context.Context) ([]model.Tweet, error)
	CreateTweet(ctx context.Context, req model.TweetRequest) (model.Tweet, error)
}

// View is an immutable snapshot for rendering. Tweets are already ordered.
type View struct {
	Tweets     []model.Tweet
	Loading    bool
	Submitting bool
	Error      string
	Loaded     bool
}

// Shell holds the authoritative collection. Safe for concurrent use.
type Shell struct {
	svc     TweetService
	orderer timeline.Orderer
	logger  *slog.Logger

	mu         sync.Mutex
	tweets     []model.Tweet
	loaded     bool
	pending    int
	submitting bool
	errMsg     string

	// issued counts reloads started; applied is the ticket of the newest
	// response stored. Older responses are dropped.
	issued  uint64
	applied uint64
}

// New returns a Shell backed by svc.
func New(svc TweetService, orderer timeline.Orderer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{svc: svc, orderer: orderer, logger: logger}
}

// Reload fetches the full list and replaces the collection. When reloads
// overlap, a response is applied only if no newer reload has completed first.
func (s *Shell) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.pending++
	s.errMsg = ""
	s.mu.Unlock()

	tweets, err := s.svc.ListTweets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--

	if ticket < s.applied {
		s.logger.Debug("discarding stale reload", "ticket", ticket, "applied", s.applied)
		return err
	}
	if err != nil {
		s.errMsg = client.Message(err)
		s.logger.Error("loading tweets failed", "error", err)
		return err
	}

	s.applied = ticket
	s.tweets = append([]model.Tweet(nil), tweets...)
	s.loaded = true
	return nil
}

// EnsureLoaded reloads once if the collection has never been fetched.
func (s *Shell) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Submit validates f, creates the tweet and prepends it to the collection.
// Invalid forms never reach the service. The returned error is a
// *form.ValidationError, ErrSubmitInFlight or the transport error.
func (s *Shell) Submit(ctx context.Context, f form.Form) (model.Tweet, error) {
	if err := f.Validate(); err != nil {
		return model.Tweet{}, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return model.Tweet{}, ErrSubmitInFlight
	}
	s.submitting = true
	s.mu.Unlock()

	created, err := s.svc.CreateTweet(ctx, f.Request())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.logger.Error("creating tweet failed", "error", err)
		return model.Tweet{}, err
	}

	// prepend; display order comes from the ordering engine
	s.tweets = append([]model.Tweet{created}, s.tweets...)
	return created, nil
}

// View returns the current state with tweets run through the ordering engine.
func (s *Shell) View() View {
	s.mu.Lock()
	tweets := append([]model.Tweet(nil), s.tweets...)
	v := View{
		Loading:    s.pending > 0,
		Submitting: s.submitting,
		Error:      s.errMsg,
		Loaded:     s.loaded,
	}
	s.mu.Unlock()

	v.Tweets = s.orderer.Order(tweets)
	return v
}

// Tweets returns the collection in storage order (newest submission first, then
// the last reload as received).
func (s *Shell) Tweets() []model.Tweet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Tweet(nil), s.tweets...)
}
