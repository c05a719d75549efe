package assessment

// Response is one answered question: the question ID and the index of the
// selected option.
type Response struct {
	QuestionID     int `json:"question_id"`
	SelectedOption int `json:"selected_option"`
}

// ScoreTally holds accumulated points per category. Categories that never
// received points are absent and count as zero.
type ScoreTally map[Category]int

// Tally accumulates option weights for every response that resolves against
// the question bank. Unknown question IDs and out-of-range option indexes
// contribute nothing.
func Tally(responses []Response) ScoreTally {
	tally := make(ScoreTally)
	for _, r := range responses {
		opt, ok := lookupOption(r.QuestionID, r.SelectedOption)
		if !ok {
			continue
		}
		for _, w := range opt.Weights {
			tally[w.Category] += w.Points
		}
	}
	return tally
}

// Dominant returns the highest-scoring category. On a tie the category that
// appears first in the question bank wins (grey, blue, yellow, green, pink).
// An empty tally yields DefaultCategory.
func (t ScoreTally) Dominant() Category {
	best := Category("")
	bestScore := 0
	for _, c := range declaredOrder {
		score, ok := t[c]
		if !ok {
			continue
		}
		if best == "" || score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == "" {
		return DefaultCategory
	}
	return best
}

// Classify scores responses and returns the dominant category. It never
// fails: malformed input degrades to no contribution, and no contribution
// at all yields DefaultCategory.
func Classify(responses []Response) Category {
	return Tally(responses).Dominant()
}
