package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/ai/gemini"
	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/filtering"
	"github.com/spigell/job-matcher/internal/form"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/secrets"
	"github.com/spigell/job-matcher/internal/submission"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank catalog postings for a candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("catalog", "c", "", "job catalog file (.csv, .json, .yaml)")
	matchCmd.Flags().StringP("candidate", "p", "", "candidate form file (.yaml, .json, .toml)")
	matchCmd.Flags().BoolP("interactive", "i", false, "ask the candidate form questions in the terminal")
	matchCmd.Flags().IntP("top", "n", matching.DefaultTop, "number of postings to show")
	matchCmd.Flags().IntP("workers", "w", 0, "score postings with this many goroutines")
	matchCmd.Flags().StringSliceP("exclude-company", "e", nil, "leave postings of this company out, can be repeated")
	matchCmd.Flags().Bool("keep-duplicates", false, "do not drop repeated (title, company) postings")
	matchCmd.Flags().StringP("submissions-file", "s", "", "append the candidate form to this JSON file")
	matchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	matchCmd.Flags().Bool("ai", false, "add a Gemini note to every ranked posting")

	viper.BindPFlag("catalog", matchCmd.Flags().Lookup("catalog"))
	viper.BindPFlag("candidate", matchCmd.Flags().Lookup("candidate"))
	viper.BindPFlag("top", matchCmd.Flags().Lookup("top"))
	viper.BindPFlag("workers", matchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("exclude-companies", matchCmd.Flags().Lookup("exclude-company"))
	viper.BindPFlag("keep-duplicates", matchCmd.Flags().Lookup("keep-duplicates"))
	viper.BindPFlag("submissions-file", matchCmd.Flags().Lookup("submissions-file"))
	viper.BindPFlag("output", matchCmd.Flags().Lookup("output"))
	viper.BindPFlag("ai.enabled", matchCmd.Flags().Lookup("ai"))
}

func runMatch(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	interactive, _ := cmd.Flags().GetBool("interactive")

	run := &matchRun{
		config: config,
		logger: logger,
		now:    time.Now,
	}
	if interactive {
		run.prompter = form.Terminal{}
	}

	if config.AI != nil && config.AI.Enabled {
		annotator, err := newAnnotator(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping AI notes", zap.Error(err))
		} else {
			run.annotator = annotator
		}
	}

	result, err := run.execute(ctx)
	if errors.Is(err, form.ErrAborted) {
		logger.Info("exiting", zap.String("reason", "form aborted"))
		return
	}
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	if len(result.Ranked) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings to rank"))
		return
	}

	if err := render(cmd.OutOrStdout(), config.Output, result); err != nil {
		logger.Fatal("rendering results", zap.Error(err))
	}

	if run.prompter != nil && config.Output != outputJSON {
		if err := browse(run.prompter, cmd.OutOrStdout(), result); err != nil && !errors.Is(err, form.ErrAborted) {
			logger.Fatal("browsing results", zap.Error(err))
		}
	}
}

// matchRun holds everything one match needs. prompter and annotator are optional.
type matchRun struct {
	config    *Config
	logger    *zap.Logger
	prompter  form.Prompter
	annotator ai.Annotator
	now       func() time.Time
}

type matchResult struct {
	Candidate  matching.CandidateProfile
	Ranked     []matching.ScoredJobPosting
	Notes      []*ai.Note
	Submission *submission.Submission
}

func (r *matchRun) execute(ctx context.Context) (*matchResult, error) {
	config := r.config
	runLog := logger.WithFields(r.logger, logger.MatchFields(config.Catalog, config.Candidate, strategyOf(config.Matching))...)

	scorer, err := matching.NewFromConfig(config.Matching)
	if err != nil {
		return nil, fmt.Errorf("building the dimension table: %w", err)
	}

	if strings.TrimSpace(config.Catalog) == "" {
		return nil, errors.New("catalog file is not configured")
	}

	c, err := catalog.Load(config.Catalog, runLog)
	if err != nil {
		return nil, err
	}

	runLog.Info("catalog loaded", zap.Int("postings", c.Len()), zap.Int("rejected", len(c.Rejected)))

	jobs, err := filtering.Run(ctx, r.filters(), c.Jobs, runLog)
	if err != nil {
		return nil, fmt.Errorf("filtering the catalog: %w", err)
	}

	answers, err := r.candidateForm()
	if err != nil {
		return nil, err
	}

	result := &matchResult{}

	if path := strings.TrimSpace(config.SubmissionsFile); path != "" {
		var earlier []*submission.Submission
		result.Submission, earlier, err = submission.Record(path, answers, r.now())
		if err != nil {
			return nil, err
		}
		runLog.Info("candidate form saved",
			zap.String("submission_id", result.Submission.ID),
			zap.String("filename", path),
			zap.Int("earlier_submissions", len(earlier)),
		)
	}

	result.Candidate, err = answers.Profile()
	if err != nil {
		return nil, fmt.Errorf("candidate form: %w", err)
	}

	result.Ranked, err = scorer.RankParallel(ctx, result.Candidate, jobs, config.Top, config.Workers)
	if err != nil {
		return nil, err
	}

	for i, posting := range result.Ranked {
		runLog.Debug("ranked posting",
			zap.Int("rank", i+1),
			zap.String("title", posting.Title),
			zap.String("company", posting.Company),
			zap.Float64("compatibility", posting.Compatibility),
		)
	}

	if r.annotator != nil && len(result.Ranked) > 0 {
		result.Notes, err = ai.AnnotateAll(ctx, r.annotator, &result.Candidate, result.Ranked, runLog)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *matchRun) filters() []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewEmployers(r.config.ExcludeCompanies),
		filtering.NewDuplicates(),
	}
	if r.config.KeepDuplicates {
		filtering.DisableByName(steps, "duplicates", "keep-duplicates is set")
	}
	return steps
}

// candidateForm reads the candidate from the terminal or from the candidate file.
// In interactive mode the file, when configured, only prefills the answers.
func (r *matchRun) candidateForm() (*profile.Form, error) {
	path := strings.TrimSpace(r.config.Candidate)

	if r.prompter == nil {
		if path == "" {
			return nil, errors.New("candidate file is not configured, use --candidate or --interactive")
		}
		return profile.LoadFile(path)
	}

	var defaults *profile.Form
	if path != "" {
		loaded, err := profile.LoadFile(path)
		if err != nil {
			return nil, err
		}
		defaults = loaded
	}

	return form.Collect(r.prompter, defaults)
}

func strategyOf(cfg *matching.Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.SkillsStrategy
}

func newAnnotator(ctx context.Context, config *AIConfig, base *zap.Logger) (ai.Annotator, error) {
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: config.Gemini.APIKey,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, base)
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithAI(base, "gemini", generator.Model())
	return gemini.NewAnnotator(generator, aiLogger, config.Gemini.MaxLogLength), nil
}
