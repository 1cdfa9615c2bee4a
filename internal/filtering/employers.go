package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/utils"
)

type employersFilter struct {
	employers []string
	targets   map[string]struct{}
}

// NewEmployers creates a filter that removes postings of the given companies,
// compared case-insensitively.
func NewEmployers(employers []string) Filter {
	f := &employersFilter{targets: make(map[string]struct{}, len(employers))}
	for _, employer := range employers {
		if key := utils.Fold(employer); key != "" {
			f.employers = append(f.employers, strings.TrimSpace(employer))
			f.targets[key] = struct{}{}
		}
	}
	return f
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Disable(string) {}

func (f *employersFilter) IsEnabled() bool { return true }

func (f *employersFilter) Apply(_ context.Context, logger *zap.Logger, jobs []matching.JobPosting) ([]matching.JobPosting, Step, error) {
	initial := len(jobs)
	if len(f.targets) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	var excluded []string
	kept := make([]matching.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if _, ok := f.targets[utils.Fold(job.Company)]; ok {
			excluded = append(excluded, job.Title)
			continue
		}
		kept = append(kept, job)
	}

	if len(excluded) > 0 {
		logger.Info("excluding postings by employers",
			zap.Strings("excluded_employers", f.employers),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(excluded), Left: len(kept)}, nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.employers) > 0 {
		details["employers"] = strings.Join(f.employers, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
