package domain

// RelevanceTitleBonus is added to a result's score when its primary display
// name (title or name) matched.
const RelevanceTitleBonus = 2

// Score computes the relevance of r: one point per matched field plus
// RelevanceTitleBonus for a primary-name match.
func Score(r Result) int {
	score := len(r.MatchedFields)
	for _, f := range r.MatchedFields {
		if f == FieldTitle || f == FieldName {
			return score + RelevanceTitleBonus
		}
	}
	return score
}
