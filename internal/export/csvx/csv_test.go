package csvx_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveymed-analytics/internal/export/csvx"
)

func TestEscapeField(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"":               "",
		"Smith, John":    `"Smith, John"`,
		`say "hi"`:       `"say ""hi"""`,
		"two\nlines":     "\"two\nlines\"",
		" leading space": " leading space",
	}
	for in, want := range cases {
		assert.Equal(t, want, csvx.EscapeField(in), "input %q", in)
	}
}

func TestLine_RoundTrip(t *testing.T) {
	line := csvx.Line("Smith, John", "john@example.com", `5" screen`)
	assert.Equal(t, `"Smith, John",john@example.com,"5"" screen"`, line)

	// standart parser orijinal değerleri geri vermeli
	rec, err := csv.NewReader(strings.NewReader(line)).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith, John", "john@example.com", `5" screen`}, rec)
}

func TestRenderSection(t *testing.T) {
	got := csvx.RenderSection(csvx.Section{
		Title: "User Activity",
		Stats: []csvx.Stat{{Metric: "Total Users", Value: "10"}, {Metric: "Active Rate", Value: "40.0%"}},
		Tables: []csvx.Table{{
			Title:   "Top Users",
			Headers: []string{"Name", "Sessions"},
			Rows:    [][]string{{"Smith, John", "3"}},
		}},
	})

	want := "\"User Activity\"\n\n" +
		"Metric,Value\n" +
		"Total Users,10\n" +
		"Active Rate,40.0%\n" +
		"\n" +
		"Top Users\n" +
		"Name,Sessions\n" +
		"\"Smith, John\",3\n"
	assert.Equal(t, want, got)
}

func TestRenderSection_TitleAlwaysQuoted(t *testing.T) {
	got := csvx.RenderSection(csvx.Section{Title: `Content & "Training"`})
	assert.Equal(t, "\"Content & \"\"Training\"\"\"\n\n", got)
}

func TestRenderSections_BOMAndSeparator(t *testing.T) {
	out := string(csvx.RenderSections(
		csvx.Section{Title: "A", Stats: []csvx.Stat{{Metric: "x", Value: "1"}}},
		csvx.Section{Title: "B"},
	))

	require.True(t, strings.HasPrefix(out, csvx.BOM))
	assert.Equal(t, 1, strings.Count(out, "\n---\n"))
	assert.Contains(t, out, "\"A\"\n\nMetric,Value\nx,1\n\n---\n\n\"B\"\n\n")
}

func TestRenderSection_SkipsHeaderlessTables(t *testing.T) {
	got := csvx.RenderSection(csvx.Section{Title: "Empty", Tables: []csvx.Table{{Title: "Nothing"}}})
	assert.Equal(t, "\"Empty\"\n\n", got)
}
