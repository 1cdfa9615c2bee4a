package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/utils"
)

type duplicatesFilter struct {
	enabled bool
	reason  string
}

// NewDuplicates creates a filter that keeps only the first posting of every
// (title, company) pair, compared case- and accent-insensitively.
func NewDuplicates() Filter {
	return &duplicatesFilter{enabled: true}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return f.enabled }

func (f *duplicatesFilter) Apply(_ context.Context, logger *zap.Logger, jobs []matching.JobPosting) ([]matching.JobPosting, Step, error) {
	initial := len(jobs)
	seen := make(map[[2]string]struct{}, len(jobs))
	kept := make([]matching.JobPosting, 0, len(jobs))

	for _, job := range jobs {
		key := [2]string{utils.Key(job.Title), utils.Key(job.Company)}
		if _, ok := seen[key]; ok {
			logger.Debug("dropping duplicate posting",
				zap.String("title", job.Title),
				zap.String("company", job.Company),
			)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, job)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
