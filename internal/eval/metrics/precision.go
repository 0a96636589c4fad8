package metrics

// PrecisionAtK is a single-relevant-source precision proxy: one hit in ranked[:k]
// divided by the number of sources actually considered, max(1, min(k, len(ranked))).
// It is not classic precision and is kept as-is for dashboard compatibility.
func PrecisionAtK(ranked []string, expected string, k int) float64 {
	var hit float64
	if HitAtK(ranked, expected, k) {
		hit = 1
	}
	return hit / float64(max(1, min(k, len(ranked))))
}

// RetrievalScores groups the ranking metrics of one question.
type RetrievalScores struct {
	Ranked         []string
	TopSource      string
	HitAt1         bool
	HitAt3         bool
	HitAt4         bool
	Rank           int
	ReciprocalRank float64
	Precision      float64
}

func ComputeRetrieval(sources []string, expected string, topK int) RetrievalScores {
	ranked := DedupSources(sources)
	s := RetrievalScores{
		Ranked:         ranked,
		HitAt1:         HitAtK(ranked, expected, 1),
		HitAt3:         HitAtK(ranked, expected, 3),
		HitAt4:         HitAtK(ranked, expected, 4),
		Rank:           SourceRank(ranked, expected, topK),
		ReciprocalRank: ReciprocalRank(ranked, expected, topK),
		Precision:      PrecisionAtK(ranked, expected, topK),
	}
	if len(ranked) > 0 {
		s.TopSource = ranked[0]
	}
	return s
}
