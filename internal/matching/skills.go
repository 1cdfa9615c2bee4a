package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Names of the available skill strategies.
const (
	StrategyOverlap     = "overlap"
	StrategyContainment = "containment"
	StrategyTFIDF       = "tfidf"
)

// SkillStrategy compares a candidate's skills with a posting. ok is false when the
// posting lacks the data the strategy needs; an empty candidate set yields (0, true).
type SkillStrategy interface {
	Name() string
	Similarity(skills SkillSet, job *JobPosting) (similarity float64, ok bool)
}

// NewSkillStrategy returns the strategy registered under name.
func NewSkillStrategy(name string) (SkillStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyOverlap:
		return overlapStrategy{}, nil
	case StrategyContainment:
		return containmentStrategy{}, nil
	case StrategyTFIDF:
		return tfidfStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown skill strategy %q", name)
	}
}

// overlapStrategy is |candidate ∩ required| / |required|.
type overlapStrategy struct{}

func (overlapStrategy) Name() string { return StrategyOverlap }

func (overlapStrategy) Similarity(skills SkillSet, job *JobPosting) (float64, bool) {
	if job.Skills.Len() == 0 {
		return 0, false
	}
	return float64(skills.Intersect(job.Skills)) / float64(job.Skills.Len()), true
}

// containmentStrategy is the fraction of candidate skills found in the description.
type containmentStrategy struct{}

func (containmentStrategy) Name() string { return StrategyContainment }

func (containmentStrategy) Similarity(skills SkillSet, job *JobPosting) (float64, bool) {
	text := normalizePhrase(job.Description)
	if text == "" {
		return 0, false
	}
	if skills.Len() == 0 {
		return 0, true
	}

	found := 0
	for _, skill := range skills.items {
		if containsPhrase(text, normalizePhrase(skill)) {
			found++
		}
	}
	return float64(found) / float64(skills.Len()), true
}

// tfidfStrategy is the cosine similarity of TF-IDF vectors fitted on the two documents
// (candidate skills; posting skills and description). IDF is smoothed:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
type tfidfStrategy struct{}

func (tfidfStrategy) Name() string { return StrategyTFIDF }

func (tfidfStrategy) Similarity(skills SkillSet, job *JobPosting) (float64, bool) {
	jobDoc := append(skillWords(job.Skills.items), words(job.Description)...)
	if len(jobDoc) == 0 {
		return 0, false
	}
	candidateDoc := skillWords(skills.items)
	if len(candidateDoc) == 0 {
		return 0, true
	}
	return cosineTFIDF(candidateDoc, jobDoc), true
}

func cosineTFIDF(docs ...[]string) float64 {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]float64)
		for _, term := range doc {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
		}
	}

	// Iterate the vocabulary in a fixed order so float sums are reproducible.
	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	n := float64(len(docs))
	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocabulary))
		var norm float64
		for j, term := range vocabulary {
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			vec[j] = counts[i][term] * idf
			norm += vec[j] * vec[j]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return 0
		}
		for j := range vec {
			vec[j] /= norm
		}
		vectors[i] = vec
	}

	var dot float64
	for j := range vocabulary {
		dot += vectors[0][j] * vectors[1][j]
	}
	return clamp01(dot)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
