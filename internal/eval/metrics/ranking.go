package metrics

// DedupSources removes repeated sources, keeping first-occurrence order.
func DedupSources(sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	ranked := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		ranked = append(ranked, s)
	}
	return ranked
}

// HitAtK reports whether expected appears within the first k ranked sources.
// An empty expected source never hits.
func HitAtK(ranked []string, expected string, k int) bool {
	return SourceRank(ranked, expected, k) > 0
}

// SourceRank returns the 1-indexed position of expected within ranked[:k], or 0 when absent.
func SourceRank(ranked []string, expected string, k int) int {
	if expected == "" || k <= 0 {
		return 0
	}
	n := min(k, len(ranked))
	for i := 0; i < n; i++ {
		if ranked[i] == expected {
			return i + 1
		}
	}
	return 0
}

// ReciprocalRank returns 1/rank of expected within ranked[:k], or 0.
func ReciprocalRank(ranked []string, expected string, k int) float64 {
	rank := SourceRank(ranked, expected, k)
	if rank == 0 {
		return 0
	}
	return 1.0 / float64(rank)
}
