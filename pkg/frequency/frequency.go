package frequency

import "math"

// TermFrequency pairs a Term with its occurrence count and weight.
type TermFrequency struct {
	term   Term
	count  int
	weight float64
}

// NewTermFrequency computes the weight of count relative to maxFrequency,
// rounded to four decimal places. A zero maxFrequency yields weight 0.
func NewTermFrequency(term Term, count, maxFrequency int) TermFrequency {
	var weight float64
	if maxFrequency > 0 {
		weight = roundWeight(float64(count) / float64(maxFrequency))
	}
	return TermFrequency{term: term, count: count, weight: weight}
}

func roundWeight(w float64) float64 {
	return math.Round(w*10000) / 10000
}

func (tf TermFrequency) Term() Term      { return tf.term }
func (tf TermFrequency) Count() int      { return tf.count }
func (tf TermFrequency) Weight() float64 { return tf.weight }

// Report is the result of one aggregation run.
type Report struct {
	totalUnique  int
	totalTerms   int
	maxFrequency int
	topFraction  float64
	topTerms     []TermFrequency
}

// TotalUniqueTerms is the number of distinct normalized texts.
func (r Report) TotalUniqueTerms() int { return r.totalUnique }

// TotalTerms counts every occurrence, duplicates included.
func (r Report) TotalTerms() int { return r.totalTerms }

// MaxFrequency is the highest count of any single term.
func (r Report) MaxFrequency() int { return r.maxFrequency }

// TopFraction is the ratio the top subset was sized with.
func (r Report) TopFraction() float64 { return r.topFraction }

// TopTerms returns a copy of the ranked top subset, highest count first.
func (r Report) TopTerms() []TermFrequency {
	out := make([]TermFrequency, len(r.topTerms))
	copy(out, r.topTerms)
	return out
}

// TopPercentage is len(TopTerms) as a percentage of TotalUniqueTerms.
func (r Report) TopPercentage() float64 {
	if r.totalUnique == 0 {
		return 0
	}
	return float64(len(r.topTerms)) / float64(r.totalUnique) * 100
}

// IsEmpty reports whether no terms were aggregated.
func (r Report) IsEmpty() bool { return r.totalUnique == 0 }
