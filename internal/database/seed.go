package database

import (
	"context"
	"fmt"
	"time"

	"tweetboard/internal/model"
)

type seedTweet struct {
	author  string
	message string
	age     time.Duration
}

var sampleTweets = []seedTweet{
	{"Alice Johnson", "Just had the most amazing coffee at the new cafe downtown! ☕", 5 * time.Minute},
	{"Bob Smith", "Working on an exciting new project in Go. The new features are incredible!", 15 * time.Minute},
	{"Charlie Brown", "Beautiful sunset today! Nature never fails to amaze me 🌅", 30 * time.Minute},
	{"Diana Prince", "Finally finished reading that book I started months ago. Great feeling of accomplishment!", 45 * time.Minute},
	{"Alice Johnson", "Learning htmx and loving it. The developer experience keeps getting better!", time.Hour},
	{"Eve Wilson", "Just deployed my first service to production. Nervous but excited! 🚀", 2 * time.Hour},
	{"Frank Miller", "Docker makes development so much easier. Can't imagine working without containers now.", 3 * time.Hour},
	{"Grace Hopper", "Debugging is like being the detective in a crime movie where you are also the murderer. 🕵️‍♀️", 4 * time.Hour},
	{"Henry Ford", "PostgreSQL's performance improvements in the latest version are impressive!", 5 * time.Hour},
	{"Bob Smith", "Weekend coding session complete! Built a REST API and learned a lot in the process.", 24 * time.Hour},
	{"Alice Johnson", "The weather is perfect for a long walk. Sometimes you need to step away from the screen.", 26 * time.Hour},
	{"Diana Prince", "Attended an amazing tech conference today. So many inspiring talks and networking opportunities!", 48 * time.Hour},
}

// Seed inserts the sample tweets, dated relative to now, when the store is
// empty. It returns the number of tweets inserted.
func Seed(ctx context.Context, store Store, now time.Time) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for _, s := range sampleTweets {
		rec := model.Record{Author: s.author, Message: s.message, CreatedAt: now.Add(-s.age)}
		if _, err := store.Create(ctx, rec); err != nil {
			return 0, err
		}
	}
	return len(sampleTweets), nil
}
