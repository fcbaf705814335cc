package frequency

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultTopFraction keeps the top 10% of unique terms.
const DefaultTopFraction = 0.10

// ErrInvalidTopFraction is returned when a top fraction is outside (0, 1].
var ErrInvalidTopFraction = errors.New("top fraction must be in (0, 1]")

// ValidateTopFraction rejects fractions outside (0, 1], including NaN.
func ValidateTopFraction(f float64) error {
	if math.IsNaN(f) || f <= 0 || f > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidTopFraction, f)
	}
	return nil
}

// Aggregate counts terms and ranks them, keeping the top fraction of
// unique terms. Empty input yields an empty Report and no error.
func Aggregate(terms []Term, topFraction float64) (Report, error) {
	return AggregateTally(Map(terms), topFraction)
}

// AggregateTally builds a Report from an already reduced Tally.
func AggregateTally(t Tally, topFraction float64) (Report, error) {
	if err := ValidateTopFraction(topFraction); err != nil {
		return Report{}, err
	}

	report := Report{topFraction: topFraction, topTerms: []TermFrequency{}}
	if t.Unique() == 0 {
		return report, nil
	}

	ranked := Rank(t)
	n := TopN(len(ranked), topFraction)

	report.totalUnique = len(ranked)
	report.totalTerms = t.Total()
	report.maxFrequency = ranked[0].count
	report.topTerms = ranked[:n:n]
	return report, nil
}

// TopN returns max(1, floor(unique*topFraction)), or 0 when unique is 0.
func TopN(unique int, topFraction float64) int {
	if unique <= 0 {
		return 0
	}
	n := int(math.Floor(float64(unique) * topFraction))
	if n < 1 {
		n = 1
	}
	if n > unique {
		n = unique
	}
	return n
}

// Rank returns one TermFrequency per distinct text, ordered by count
// descending and then by text ascending.
func Rank(t Tally) []TermFrequency {
	highest := t.Max()
	ranked := make([]TermFrequency, 0, len(t.counts))
	for text, count := range t.counts {
		term := Term{text: text, compound: t.compound[text]}
		ranked = append(ranked, NewTermFrequency(term, count, highest))
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term.text < ranked[j].term.text
	})
	return ranked
}
