// Package matching scores candidates against job postings and ranks postings.
package matching

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultTop is the number of postings Rank returns when top is not positive.
const DefaultTop = 5

// DimensionResult is the outcome of one dimension for one (candidate, posting) pair.
type DimensionResult struct {
	ID         string
	Weight     float64
	Similarity float64
	Skipped    bool
}

// Breakdown holds the sums a score is computed from.
type Breakdown struct {
	Score      float64
	ScoreSum   float64
	WeightSum  float64
	Dimensions []DimensionResult
}

// Scorer evaluates an ordered table of dimensions. It holds no mutable state and is
// safe for concurrent use.
type Scorer struct {
	dimensions []Dimension
}

// New creates a scorer from an explicit dimension table.
func New(dims ...Dimension) *Scorer {
	table := make([]Dimension, 0, len(dims))
	for _, dim := range dims {
		if dim.Compare == nil || dim.Weight <= 0 {
			continue
		}
		table = append(table, dim)
	}
	return &Scorer{dimensions: table}
}

// NewFromConfig creates a scorer over the default table adjusted by cfg.
func NewFromConfig(cfg *Config) (*Scorer, error) {
	dims, err := Dimensions(cfg)
	if err != nil {
		return nil, err
	}
	return New(dims...), nil
}

// Dimensions returns a copy of the active table.
func (s *Scorer) Dimensions() []Dimension {
	out := make([]Dimension, len(s.dimensions))
	copy(out, s.dimensions)
	return out
}

// Score returns the compatibility of candidate and job in [0,100], rounded to two decimals.
func (s *Scorer) Score(candidate CandidateProfile, job JobPosting) float64 {
	return s.Explain(candidate, job).Score
}

// Explain scores the pair and reports every dimension, skipped ones included.
func (s *Scorer) Explain(candidate CandidateProfile, job JobPosting) Breakdown {
	b := Breakdown{Dimensions: make([]DimensionResult, 0, len(s.dimensions))}

	for _, dim := range s.dimensions {
		similarity, ok := dim.Compare(&candidate, &job)
		if !ok {
			b.Dimensions = append(b.Dimensions, DimensionResult{ID: dim.ID, Weight: dim.Weight, Skipped: true})
			continue
		}
		similarity = clamp01(similarity)
		b.ScoreSum += similarity * dim.Weight
		b.WeightSum += dim.Weight
		b.Dimensions = append(b.Dimensions, DimensionResult{ID: dim.ID, Weight: dim.Weight, Similarity: similarity})
	}

	b.Score = percentage(b.ScoreSum, b.WeightSum)
	return b
}

func percentage(scoreSum, weightSum float64) float64 {
	if weightSum <= 0 {
		return 0
	}
	pct := math.Round(scoreSum/weightSum*100*100) / 100
	return math.Max(0, math.Min(100, pct))
}

// Rank scores every posting and returns the best top postings, highest first. Equal
// scores keep catalog order. jobs is not modified.
func (s *Scorer) Rank(candidate CandidateProfile, jobs []JobPosting, top int) []ScoredJobPosting {
	scored := make([]ScoredJobPosting, len(jobs))
	for i := range jobs {
		scored[i] = s.annotate(candidate, jobs[i])
	}
	return selectTop(scored, top)
}

// RankParallel is Rank with scoring spread over at most workers goroutines. The
// result is identical to Rank. It fails only when ctx is done.
func (s *Scorer) RankParallel(ctx context.Context, candidate CandidateProfile, jobs []JobPosting, top, workers int) ([]ScoredJobPosting, error) {
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.Rank(candidate, jobs, top), nil
	}

	scored := make([]ScoredJobPosting, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = s.annotate(candidate, jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return selectTop(scored, top), nil
}

func (s *Scorer) annotate(candidate CandidateProfile, job JobPosting) ScoredJobPosting {
	b := s.Explain(candidate, job)
	return ScoredJobPosting{
		JobPosting:    job,
		Compatibility: b.Score,
		Dimensions:    b.Dimensions,
	}
}

func selectTop(scored []ScoredJobPosting, top int) []ScoredJobPosting {
	if top <= 0 {
		top = DefaultTop
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Compatibility > scored[b].Compatibility
	})
	if len(scored) > top {
		scored = scored[:top]
	}
	return scored
}
