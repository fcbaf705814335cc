package frequency

// Tally maps normalized term text to its occurrence count.
// Build one with Map and merge several with Reduce; a Tally is never
// modified after it is returned.
type Tally struct {
	counts   map[string]int
	compound map[string]bool
	total    int
}

// Map counts terms by normalized text. Terms with empty text are dropped.
// A text is marked compound if any of its occurrences was compound.
func Map(terms []Term) Tally {
	t := Tally{
		counts:   make(map[string]int),
		compound: make(map[string]bool),
	}
	for _, term := range terms {
		if term.text == "" {
			continue
		}
		t.counts[term.text]++
		t.total++
		if term.compound {
			t.compound[term.text] = true
		}
	}
	return t
}

// Reduce merges tallies into a new Tally.
func Reduce(tallies ...Tally) Tally {
	out := Tally{
		counts:   make(map[string]int),
		compound: make(map[string]bool),
	}
	for _, t := range tallies {
		for text, count := range t.counts {
			out.counts[text] += count
		}
		for text := range t.compound {
			out.compound[text] = true
		}
		out.total += t.total
	}
	return out
}

// Count returns the occurrences of the normalized form of text.
func (t Tally) Count(text string) int { return t.counts[Normalize(text)] }

// Unique is the number of distinct texts.
func (t Tally) Unique() int { return len(t.counts) }

// Total is the number of counted occurrences.
func (t Tally) Total() int { return t.total }

// Max returns the highest count, or 0 for an empty tally.
func (t Tally) Max() int {
	highest := 0
	for _, c := range t.counts {
		if c > highest {
			highest = c
		}
	}
	return highest
}
