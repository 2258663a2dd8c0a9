package timeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tweetboard/internal/model"
)

func testOrderer() Orderer {
	return Orderer{
		Now:    func() time.Time { return fixedNow },
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
}

func ids(tweets []model.Tweet) []int64 {
	out := make([]int64, len(tweets))
	for i, t := range tweets {
		out[i] = t.ID
	}
	return out
}

func TestOrder_SameInstantSortsByAuthor(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "Bob", Date: "10:00 - 01/01/2025 GMT"},
		{ID: 2, Author: "Alice", Date: "10:00 - 01/01/2025 GMT"},
	}

	out := testOrderer().Order(in)

	assert.Equal(t, []int64{2, 1}, ids(out))
	assert.Equal(t, "Alice", out[0].Author)
	assert.Equal(t, "Bob", out[1].Author)
}

func TestOrder_LaterTimeFirst(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Date: "09:00 - 02/01/2025 GMT"},
		{ID: 2, Date: "10:00 - 02/01/2025 GMT"},
	}

	out := testOrderer().Order(in)

	assert.Equal(t, []int64{2, 1}, ids(out))
}

func TestOrder_DateBeatsTimeOfDay(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "A", Date: "23:59 - 31/12/2024 GMT"},
		{ID: 2, Author: "B", Date: "00:00 - 01/01/2025 GMT"},
		{ID: 3, Author: "C", Date: "12:00 - 15/06/2024 GMT"},
	}

	out := testOrderer().Order(in)

	assert.Equal(t, []int64{2, 1, 3}, ids(out))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "Bob", Date: "09:00 - 01/01/2025 GMT"},
		{ID: 2, Author: "Alice", Date: "10:00 - 01/01/2025 GMT"},
	}
	before := append([]model.Tweet(nil), in...)

	_ = testOrderer().Order(in)

	assert.Equal(t, before, in)
}

func TestOrder_Empty(t *testing.T) {
	assert.Empty(t, testOrderer().Order(nil))
	assert.NotNil(t, testOrderer().Order(nil))
}

func TestOrder_StableForEqualKeys(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "Sam", Date: "10:00 - 01/01/2025 GMT"},
		{ID: 2, Author: "Sam", Date: "10:00 - 01/01/2025 GMT"},
		{ID: 3, Author: "Sam", Date: "10:00 - 01/01/2025 GMT"},
	}

	out := testOrderer().Order(in)

	assert.Equal(t, []int64{1, 2, 3}, ids(out))
}

func TestOrder_MalformedDatePlacedAsNow(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "Old", Date: "10:00 - 01/01/2025 GMT"},
		{ID: 2, Author: "Broken", Date: "not-a-date"},
		{ID: 3, Author: "Future", Date: "10:00 - 01/01/2031 GMT"},
	}

	var out []model.Tweet
	require.NotPanics(t, func() { out = testOrderer().Order(in) })

	// fixedNow is in 2030: after 2025, before 2031
	assert.Equal(t, []int64{3, 2, 1}, ids(out))
}

func TestOrder_MalformedDatesShareOneNow(t *testing.T) {
	calls := 0
	o := testOrderer()
	o.Now = func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Minute)
	}

	in := []model.Tweet{
		{ID: 1, Author: "Zed", Date: "garbage"},
		{ID: 2, Author: "Amy", Date: "missing separator"},
	}

	out := o.Order(in)

	assert.Equal(t, 1, calls)
	assert.Equal(t, []int64{2, 1}, ids(out), "fallback tweets tie on instant and fall back to author order")
}

func TestOrder_LogsParseFailure(t *testing.T) {
	var buf bytes.Buffer
	o := testOrderer()
	o.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	o.Order([]model.Tweet{{ID: 7, Date: "nope"}})

	assert.Contains(t, buf.String(), "tweet date not parseable")
	assert.Contains(t, buf.String(), "id=7")
}

func TestOrder_LocaleAwareAuthorComparison(t *testing.T) {
	date := "10:00 - 01/01/2025 GMT"
	in := []model.Tweet{
		{ID: 1, Author: "bob", Date: date},
		{ID: 2, Author: "Émile", Date: date},
		{ID: 3, Author: "Alice", Date: date},
		{ID: 4, Author: "Zoe", Date: date},
	}

	out := testOrderer().Order(in)

	// byte order would put "bob" after "Zoe" and "Émile" last
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(out))
}

func randomTweets(r *rand.Rand, n int) []model.Tweet {
	authors := []string{"Alice", "Bob", "Charlie", "Diana", "Eve"}
	out := make([]model.Tweet, n)
	for i := range out {
		out[i] = model.Tweet{
			ID:     int64(i + 1),
			Author: authors[r.Intn(len(authors))],
			Date: fmt.Sprintf("%02d:%02d - %02d/%02d/%d GMT",
				r.Intn(3)+9, r.Intn(2)*30, r.Intn(3)+1, r.Intn(2)+1, 2024+r.Intn(2)),
		}
	}
	return out
}

func TestOrder_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	o := testOrderer()

	for round := 0; round < 50; round++ {
		in := randomTweets(r, r.Intn(30)+1)
		out := o.Order(in)

		// permutation
		require.Len(t, out, len(in))
		assert.ElementsMatch(t, in, out)

		// composite key ordering
		for i := 1; i < len(out); i++ {
			prev := ParseDate(out[i-1].Date, fixedNow).Instant
			cur := ParseDate(out[i].Date, fixedNow).Instant
			require.False(t, cur.After(prev), "round %d: %q placed before later %q", round, out[i-1].Date, out[i].Date)
			if cur.Equal(prev) {
				require.LessOrEqual(t, out[i-1].Author, out[i].Author)
			}
		}

		// idempotence
		assert.Equal(t, out, o.Order(out))
	}
}

func TestOrder_PackageLevel(t *testing.T) {
	in := []model.Tweet{
		{ID: 1, Author: "Bob", Date: "10:00 - 01/01/2025 GMT"},
		{ID: 2, Author: "Alice", Date: "10:00 - 01/01/2025 GMT"},
	}

	assert.Equal(t, []int64{2, 1}, ids(Order(in)))
}
