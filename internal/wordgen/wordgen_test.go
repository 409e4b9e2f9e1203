package wordgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

func score(v float64) *float64 { return &v }

func TestContrast(t *testing.T) {
	assert.Equal(t, 0.5, Contrast(0.5, 2))
	assert.InDelta(t, 1.0, Contrast(1, 2), 1e-12)
	assert.InDelta(t, 0.0, Contrast(0, 2), 1e-12)
	// 0.55 → 0.5 + sqrt(0.1)/2
	assert.InDelta(t, 0.658113883, Contrast(0.55, 2), 1e-9)
	assert.InDelta(t, 0.341886117, Contrast(0.45, 2), 1e-9)
	assert.Equal(t, 0.7, Contrast(0.7, 0), "non-positive factor is identity")
	assert.InDelta(t, 0.7, Contrast(0.7, 1), 1e-12)
}

func TestTrunkHeight(t *testing.T) {
	assert.Equal(t, 40.0, TrunkHeight(0))
	assert.Equal(t, 40.0, TrunkHeight(12))
	assert.Equal(t, 20.0, TrunkHeight(28))
	assert.Equal(t, 10.0, TrunkHeight(100))
}

func TestMessageSentiment(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want float64
	}{
		{"positive", Message{Label: "positive", Certainty: 0.9}, 0.9},
		{"negative", Message{Label: "NEGATIVE", Certainty: 0.8}, 0.2},
		{"neutral", Message{Label: "neutral", Certainty: 0.99}, 0.5},
		{"skipped", Message{Label: "positive", Certainty: 0.9, Skip: true}, 0.5},
		{"score", Message{Label: "negative", Certainty: 1, Score: score(0.3)}, 0.3},
		{"score clamped", Message{Score: score(4)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.msg.Sentiment(), 1e-12)
		})
	}
}

func TestWeekEndIsSunday(t *testing.T) {
	assert.Equal(t, "2024-01-07", weekEnd(day("2024-01-03")).Format(weekEndLayout))
	assert.Equal(t, "2024-01-07", weekEnd(day("2024-01-07")).Format(weekEndLayout))
	assert.Equal(t, "2024-01-14", weekEnd(day("2024-01-08")).Format(weekEndLayout))
}

func TestAggregate(t *testing.T) {
	msgs := []Message{
		{Time: day("2024-02-14"), Score: score(0.5)},
		{Time: day("2024-01-03"), Label: "positive", Certainty: 0.9},
		{Time: day("2024-01-05"), Label: "negative", Certainty: 0.8},
		// Its week closes on Sunday 2024-02-04, so it belongs to February.
		{Time: day("2024-01-29"), Score: score(1)},
	}
	h := Aggregate(msgs, DefaultContrast)

	require.Len(t, h.Months, 2)
	assert.Equal(t, 40.0, h.TrunkHeight)

	jan := h.Months[0]
	assert.Equal(t, "2024-01", jan.Month)
	require.Len(t, jan.Weeks, 1)
	assert.Equal(t, "2024-01-07", jan.Weeks[0].End)
	assert.Equal(t, 2, jan.Weeks[0].Messages)
	assert.InDelta(t, 0.658113883, jan.Weeks[0].Sentiment, 1e-9)

	feb := h.Months[1]
	assert.Equal(t, "2024-02", feb.Month)
	require.Len(t, feb.Weeks, 2)
	assert.Equal(t, "2024-02-04", feb.Weeks[0].End)
	assert.Equal(t, "2024-02-18", feb.Weeks[1].End)
	assert.InDelta(t, 1.0, feb.Weeks[0].Sentiment, 1e-12)
	assert.Equal(t, 0.5, feb.Weeks[1].Sentiment)
}

func TestAggregateEmpty(t *testing.T) {
	h := Aggregate(nil, DefaultContrast)
	assert.Empty(t, h.Months)
	assert.Equal(t, "", Generate(h))
}

func TestGenerate(t *testing.T) {
	h := History{
		TrunkHeight: 40,
		Months: []Month{
			{Month: "2024-01", Weeks: []Week{{Sentiment: 0.658, Messages: 2}}},
			{Month: "2024-02", Weeks: []Week{{Sentiment: 0.5, Messages: 1}, {Sentiment: 0.1, Messages: 0}}},
			{Month: "2024-03"},
		},
	}
	want := "T(40)[-M(8)[+W(11.0)F(0.66,2)]]" +
		"T(40)[+M(8)[+W(10.5)F(0.50,1)]M(8)[+W(10.0)F(0.10,0)]]" +
		"T(40)[-]"
	assert.Equal(t, want, Generate(h))
}

func TestGenerateDerivesTrunkHeight(t *testing.T) {
	months := make([]Month, 28)
	word := Generate(History{Months: months})
	assert.Contains(t, word, "T(20)[-]T(20)[+]")
}

func TestGeneratedWordParses(t *testing.T) {
	h := Aggregate([]Message{
		{Time: day("2024-01-03"), Label: "positive", Certainty: 0.9},
		{Time: day("2024-01-10"), Label: "negative", Certainty: 0.9},
		{Time: day("2024-02-20"), Score: score(0.5)},
	}, DefaultContrast)
	p := arbor.Parse(Generate(h))

	assert.Equal(t, 2, p.Trunks)
	assert.Equal(t, 3, p.Fruits)

	depth := 0
	for _, in := range p.Instructions {
		switch in.Op {
		case arbor.OpPush:
			depth++
		case arbor.OpPop:
			depth--
		}
		require.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth, "every month and week branch is closed")
}

func TestDecodeMessages(t *testing.T) {
	doc := []byte(`
contrast: 1
messages:
  - time: 2024-01-03T10:00:00Z
    label: positive
    certainty: 0.9
  - time: 2024-01-05T10:00:00Z
    score: 0.3
`)
	h, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, h.Months, 1)
	assert.InDelta(t, 0.6, h.Months[0].Weeks[0].Sentiment, 1e-12)
	assert.Equal(t, 2, h.Months[0].Weeks[0].Messages)
}

func TestDecodeMonths(t *testing.T) {
	doc := []byte(`
trunk_height: 25
months:
  - month: "2024-05"
    weeks:
      - sentiment: 0.8
        messages: 4
`)
	h, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, 25.0, h.TrunkHeight)
	assert.Equal(t, "T(25)[-M(8)[+W(12.0)F(0.80,4)]]", Generate(h))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("messages: ["))
	assert.Error(t, err)

	_, err = Decode([]byte(`
messages:
  - time: 2024-01-03T10:00:00Z
months:
  - month: "2024-01"
`))
	assert.Error(t, err)
}

func TestWordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
months:
  - month: "2024-05"
    weeks:
      - sentiment: 0.25
        messages: 2
`), 0o644))

	word, err := Word(path)
	require.NoError(t, err)
	assert.Equal(t, "T(40)[-M(8)[+W(11.0)F(0.25,2)]]", word)

	_, err = Word(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
