package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/matching"
)

// Note is a short explanation of a ranked posting written for the candidate.
// It never changes the compatibility score.
type Note struct {
	Summary string
	Gaps    []string
	Raw     string
}

type Annotator interface {
	Annotate(ctx context.Context, candidate *matching.CandidateProfile, posting *matching.ScoredJobPosting) (*Note, error)
}

// AnnotateAll asks annotator for a note per ranked posting, in rank order. A failed
// posting gets a nil note and a warning; a cancelled context stops the loop.
func AnnotateAll(ctx context.Context, annotator Annotator, candidate *matching.CandidateProfile, ranked []matching.ScoredJobPosting, logger *zap.Logger) ([]*Note, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	notes := make([]*Note, len(ranked))
	for i := range ranked {
		if err := ctx.Err(); err != nil {
			return notes, err
		}

		note, err := annotator.Annotate(ctx, candidate, &ranked[i])
		if err != nil {
			logger.Warn("ai note failed",
				zap.String("title", ranked[i].Title),
				zap.String("company", ranked[i].Company),
				zap.Error(err),
			)
			continue
		}
		notes[i] = note
	}

	return notes, nil
}
