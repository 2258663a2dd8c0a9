// Package timeline orders tweets for display: most recent first, then by
// author name.
package timeline

import (
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tweetboard/internal/model"
)

// Orderer sorts tweets by (parsed date descending, author ascending).
// The zero value is usable and behaves like the package-level Order.
type Orderer struct {
	// Now supplies the fallback instant for unparseable dates. Defaults to time.Now.
	Now func() time.Time
	// Logger receives parse diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// Locale drives author collation. Defaults to English.
	Locale language.Tag
}

type sortKey struct {
	tweet   model.Tweet
	instant time.Time
}

// Order returns a sorted copy of tweets using the wall clock and default logger.
func Order(tweets []model.Tweet) []model.Tweet {
	return Orderer{}.Order(tweets)
}

// Order returns a new slice holding tweets sorted most recent first; tweets
// with the same instant are sorted by author using locale-aware collation.
// Tweets whose date cannot be parsed are placed as if posted now. The input is
// never modified and equal keys keep their input order.
func (o Orderer) Order(tweets []model.Tweet) []model.Tweet {
	if len(tweets) == 0 {
		return []model.Tweet{}
	}

	now := o.now()
	logger := o.logger()

	keys := make([]sortKey, len(tweets))
	for i, t := range tweets {
		res := ParseDate(t.Date, now)
		if res.Fallback {
			logger.Debug("tweet date not parseable, ordering as now",
				"id", t.ID, "date", t.Date, "error", res.Err)
		}
		keys[i] = sortKey{tweet: t, instant: res.Instant}
	}

	// collate.Collator keeps internal buffers, so one per call
	col := collate.New(o.locale())
	slices.SortStableFunc(keys, func(a, b sortKey) int {
		if c := b.instant.Compare(a.instant); c != 0 {
			return c
		}
		return col.CompareString(a.tweet.Author, b.tweet.Author)
	})

	out := make([]model.Tweet, len(keys))
	for i, k := range keys {
		out[i] = k.tweet
	}
	return out
}

func (o Orderer) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Orderer) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Orderer) locale() language.Tag {
	if o.Locale == language.Und {
		return language.English
	}
	return o.Locale
}
