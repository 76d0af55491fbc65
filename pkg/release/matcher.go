package release

import "github.com/hbollon/go-edlib"

// MatchConfidence buckets a similarity score.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // score < 0.70
	ConfidenceLow                           // score >= 0.70
	ConfidenceMedium                        // score >= 0.85
	ConfidenceHigh                          // score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Similarity scores how well a candidate title matches a parsed title.
// Jaro-Winkler favors shared prefixes, which suits media titles where the
// distinguishing part ("... Part II") comes last.
func Similarity(parsed, candidate string) float64 {
	return float64(edlib.JaroWinklerSimilarity(CleanTitle(parsed), CleanTitle(candidate)))
}

// MatchResult is the best candidate found for a parsed title.
type MatchResult struct {
	Title      string
	Index      int
	Score      float64
	Confidence MatchConfidence
}

// MatchTitle finds the candidate most similar to the parsed title.
// Index is -1 when nothing clears the minimum threshold.
func MatchTitle(parsed string, candidates []string) MatchResult {
	best := MatchResult{Index: -1, Confidence: ConfidenceNone}
	for i, c := range candidates {
		if score := Similarity(parsed, c); score > best.Score {
			best = MatchResult{Title: c, Index: i, Score: score}
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		return MatchResult{Index: -1, Confidence: ConfidenceNone}
	}
	return best
}
