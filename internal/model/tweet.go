package model

import "time"

// Limits enforced on tweet fields, counted in characters.
const (
	MaxAuthorLength  = 50
	MaxMessageLength = 280
)

// DateLayout is the display format the backend renders for Tweet.Date,
// always in GMT, e.g. "14:30 - 22/09/2025 GMT".
const DateLayout = "15:04 - 02/01/2006 GMT"

// Tweet is the wire representation of a post
type Tweet struct {
	ID      int64  `json:"id"`
	Author  string `json:"author"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// TweetRequest is the creation/update payload. ID and date are assigned server-side.
type TweetRequest struct {
	Author  string `json:"author" validate:"notblank,max=50"`
	Message string `json:"message" validate:"notblank,max=280"`
}

// Record is a tweet as the backend stores it
type Record struct {
	ID        int64
	Author    string
	Message   string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// Tweet renders the record in its wire form.
func (r Record) Tweet() Tweet {
	return Tweet{
		ID:      r.ID,
		Author:  r.Author,
		Message: r.Message,
		Date:    FormatDate(r.CreatedAt),
	}
}

// FormatDate renders t in DateLayout after converting it to UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
