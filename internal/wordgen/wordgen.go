// Package wordgen turns a conversation's sentiment history into an arbor
// word. Every month becomes a branch off the trunk and every week a twig
// carrying one fruit.
package wordgen

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultContrast is the stretch factor applied to weekly sentiment.
	DefaultContrast = 2.0

	maxTreeHeight  = 600.0
	minTrunkHeight = 10.0
	maxTrunkHeight = 40.0

	weekStep      = 8.0  // M distance between week twigs
	twigBase      = 10.0 // W for a week with no messages
	twigPerMsg    = 0.5
	neutralScore  = 0.5
	monthLayout   = "2006-01"
	weekEndLayout = "2006-01-02"
)

// Message is one scored chat message.
type Message struct {
	Time time.Time `yaml:"time"`
	// Score, when set, is used as is.
	Score *float64 `yaml:"score,omitempty"`
	// Label and Certainty come from a sentiment classifier.
	Label     string  `yaml:"label,omitempty"`
	Certainty float64 `yaml:"certainty,omitempty"`
	// Skip marks messages the classifier could not judge (media, links).
	Skip bool `yaml:"skip,omitempty"`
}

// Sentiment returns the message's score in [0,1]: the certainty for a
// positive label, its complement for a negative one, and 0.5 otherwise.
func (m Message) Sentiment() float64 {
	if m.Score != nil {
		return clamp(*m.Score, 0, 1)
	}
	if m.Skip {
		return neutralScore
	}
	switch strings.ToLower(m.Label) {
	case "positive":
		return clamp(m.Certainty, 0, 1)
	case "negative":
		return clamp(1-m.Certainty, 0, 1)
	}
	return neutralScore
}

// Week is one week of messages, labelled by the Sunday that ends it.
type Week struct {
	End       string  `yaml:"end,omitempty"`
	Sentiment float64 `yaml:"sentiment"`
	Messages  int     `yaml:"messages"`
}

// Month groups the weeks whose closing Sunday falls in it.
type Month struct {
	Month string `yaml:"month"`
	Weeks []Week `yaml:"weeks"`
}

// History is the aggregated input of Generate.
type History struct {
	// TrunkHeight is the T argument of every month. Zero means derive it
	// from the number of months.
	TrunkHeight float64 `yaml:"trunk_height,omitempty"`
	Months      []Month `yaml:"months"`
}

// Contrast stretches v away from 0.5:
// 0.5 + sign(v-0.5)·|2(v-0.5)|^(1/factor)/2. Factors ≤ 0 leave v unchanged.
func Contrast(v, factor float64) float64 {
	if factor <= 0 {
		return v
	}
	n := v - 0.5
	if n == 0 {
		return 0.5
	}
	boosted := math.Copysign(math.Pow(math.Abs(2*n), 1/factor), n) / 2
	return boosted + 0.5
}

// TrunkHeight spreads the tree over months+2 trunk segments, clamped to
// [10, 40].
func TrunkHeight(months int) float64 {
	h := maxTreeHeight / float64(months+2)
	return math.Max(minTrunkHeight, math.Min(h, maxTrunkHeight))
}

// weekEnd returns the Sunday closing the week that contains t.
func weekEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, (7-int(day.Weekday()))%7)
}

// Aggregate bins messages by week, averages their sentiment, stretches it
// by contrast and groups the weeks by month, oldest first. Weeks without
// messages never appear.
func Aggregate(msgs []Message, contrast float64) History {
	type bin struct {
		end   time.Time
		sum   float64
		count int
	}
	bins := map[string]*bin{}
	for _, m := range msgs {
		end := weekEnd(m.Time)
		key := end.Format(weekEndLayout)
		b, ok := bins[key]
		if !ok {
			b = &bin{end: end}
			bins[key] = b
		}
		b.sum += m.Sentiment()
		b.count++
	}

	keys := make([]string, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var h History
	for _, k := range keys {
		b := bins[k]
		month := b.end.Format(monthLayout)
		if len(h.Months) == 0 || h.Months[len(h.Months)-1].Month != month {
			h.Months = append(h.Months, Month{Month: month})
		}
		cur := &h.Months[len(h.Months)-1]
		cur.Weeks = append(cur.Weeks, Week{
			End:       k,
			Sentiment: Contrast(b.sum/float64(b.count), contrast),
			Messages:  b.count,
		})
	}
	h.TrunkHeight = TrunkHeight(len(h.Months))
	return h
}

// Generate writes the word for h. Each month emits T(h)[±, one
// M(8)[+W(w)F(s,n)] per week, then ]. Branch direction alternates per
// month, starting with -.
func Generate(h History) string {
	th := h.TrunkHeight
	if th <= 0 {
		th = TrunkHeight(len(h.Months))
	}

	var b strings.Builder
	sign := byte('-')
	for _, m := range h.Months {
		fmt.Fprintf(&b, "T(%s)[%c", formatNum(th, 1), sign)
		for _, w := range m.Weeks {
			n := max(w.Messages, 0)
			fmt.Fprintf(&b, "M(%s)[+W(%.1f)F(%.2f,%d)]",
				formatNum(weekStep, 1), twigBase+float64(n)*twigPerMsg, clamp(w.Sentiment, 0, 1), n)
		}
		b.WriteByte(']')
		if sign == '-' {
			sign = '+'
		} else {
			sign = '-'
		}
	}
	return b.String()
}

// formatNum prints v with at most prec decimals and no trailing zeros.
func formatNum(v float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
