package dedupe

import "github.com/Veraticus/budgetui/internal/model"

// Hashed pairs a candidate with its import hash.
type Hashed struct {
	Hash      string
	Candidate model.Candidate
}

// Filter drops candidates whose hash is in existing or appeared earlier in
// the batch. It returns the survivors in input order and the number dropped.
func Filter(candidates []model.Candidate, existing map[string]struct{}) ([]Hashed, int) {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for h := range existing {
		seen[h] = struct{}{}
	}

	fresh := make([]Hashed, 0, len(candidates))
	duplicates := 0
	for _, c := range candidates {
		h := Hash(c)
		if _, dup := seen[h]; dup {
			duplicates++
			continue
		}
		seen[h] = struct{}{}
		fresh = append(fresh, Hashed{Hash: h, Candidate: c})
	}
	return fresh, duplicates
}
