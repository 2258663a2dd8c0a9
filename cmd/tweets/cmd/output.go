package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tweetboard/internal/model"
	"tweetboard/internal/timeline"
)

// printTweets writes tweets most recent first.
func printTweets(w io.Writer, format string, tweets []model.Tweet) error {
	ordered := timeline.Order(tweets)

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ordered)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tAUTHOR\tMESSAGE")
	fmt.Fprintln(tw, "--\t----\t------\t-------")
	if len(ordered) == 0 {
		fmt.Fprintln(tw, "No tweets found")
	}
	for _, t := range ordered {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Date, t.Author, truncateString(oneLine(t.Message), 60))
	}
	return tw.Flush()
}

func printTweet(w io.Writer, format string, t model.Tweet) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	fmt.Fprintf(w, "#%d %s (%s)\n%s\n", t.ID, t.Author, t.Date, t.Message)
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateString shortens s to n runes, marking the cut with "...".
func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
