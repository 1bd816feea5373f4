package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveymed-analytics/internal/analytics/core/aggregate"
)

// ------------------------------------------------------------
// TALLY
// ------------------------------------------------------------

func TestTally_CountsSumToRows(t *testing.T) {
	rows := []struct{ key, user string }{
		{"home", "u1"}, {"feed", "u1"}, {"home", "u2"}, {"chat", "u3"}, {"home", "u1"}, {"feed", ""},
	}

	tally := aggregate.NewTally()
	for _, r := range rows {
		tally.Add(r.key, r.user)
	}

	sum := 0
	for _, e := range tally.Ranked() {
		sum += e.Count
	}
	assert.Equal(t, len(rows), sum)
	assert.Equal(t, len(rows), tally.Total())
	assert.Equal(t, 3, tally.Len())
	assert.Equal(t, 2, tally.Unique("home"))
	assert.Equal(t, 1, tally.Unique("feed"))
}

func TestTally_TiesKeepFirstSeenOrder(t *testing.T) {
	tally := aggregate.NewTally()
	for _, k := range []string{"b", "a", "c", "a", "b", "c", "d"} {
		tally.Add(k, "")
	}

	ranked := tally.Ranked()
	require.Len(t, ranked, 4)

	keys := make([]string, 0, len(ranked))
	for _, e := range ranked {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, keys)

	// aynı input, aynı sıra
	again := tally.Ranked()
	assert.Equal(t, ranked, again)
}

func TestTally_Top(t *testing.T) {
	tally := aggregate.NewTally()
	for i, k := range []string{"x", "y", "z"} {
		tally.AddN(k, "", 3-i)
	}

	top := tally.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "x", top[0].Key)
	assert.Equal(t, "y", top[1].Key)

	assert.Len(t, tally.Top(10), 3)
	assert.Empty(t, aggregate.NewTally().Top(10))
}

// ------------------------------------------------------------
// FORMATTING
// ------------------------------------------------------------

func TestFormatDuration(t *testing.T) {
	cases := map[int64]string{
		0:     "0s",
		-5:    "0s",
		45:    "45s",
		90:    "1m 30s",
		3600:  "1h 0m 0s",
		3661:  "1h 1m 1s",
		86400: "24h 0m 0s",
	}
	for in, want := range cases {
		assert.Equal(t, want, aggregate.FormatDuration(in), "seconds=%d", in)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, "40.0", aggregate.Rate(4, 10, "0.0"))
	assert.Equal(t, "33.3", aggregate.Rate(1, 3, "0.0"))
	assert.Equal(t, "66.7", aggregate.Rate(2, 3, "0.0"))
	assert.Equal(t, "0.0", aggregate.Rate(0, 0, "0.0"))
	assert.Equal(t, "-", aggregate.Rate(3, 0, aggregate.NoValue))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "40.0%", aggregate.Percent("40.0"))
	assert.Equal(t, "-", aggregate.Percent("-"))
	assert.Equal(t, "-", aggregate.Percent(""))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, aggregate.Average(5, 0))
	assert.Equal(t, 2.5, aggregate.Average(5, 2))
	assert.Equal(t, 3.3, aggregate.Average(10, 3))
	assert.Equal(t, 6.7, aggregate.Average(20, 3))
}
