package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Annotator writes notes for ranked postings with a Gemini model.
type Annotator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAnnotator(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Annotator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Annotator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type candidatePayload struct {
	Title          string   `json:"title,omitempty"`
	Seniority      string   `json:"seniority,omitempty"`
	Area           string   `json:"area,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	English        string   `json:"english,omitempty"`
	Spanish        string   `json:"spanish,omitempty"`
	OtherLanguages string   `json:"other_languages,omitempty"`
	Travel         string   `json:"travel,omitempty"`
	Equipment      string   `json:"equipment,omitempty"`
}

type dimensionPayload struct {
	ID         string  `json:"id"`
	Weight     float64 `json:"weight"`
	Similarity float64 `json:"similarity"`
	Skipped    bool    `json:"skipped,omitempty"`
}

type postingPayload struct {
	Title         string             `json:"title"`
	Company       string             `json:"company,omitempty"`
	Seniority     string             `json:"seniority,omitempty"`
	Area          string             `json:"area,omitempty"`
	Skills        []string           `json:"skills,omitempty"`
	English       string             `json:"english,omitempty"`
	Spanish       string             `json:"spanish,omitempty"`
	Travel        string             `json:"travel,omitempty"`
	Equipment     string             `json:"equipment,omitempty"`
	Description   string             `json:"description,omitempty"`
	Compatibility float64            `json:"compatibility"`
	Dimensions    []dimensionPayload `json:"dimensions"`
}

func (a *Annotator) Annotate(ctx context.Context, candidate *matching.CandidateProfile, posting *matching.ScoredJobPosting) (*ai.Note, error) {
	if candidate == nil {
		return nil, fmt.Errorf("candidate profile is required")
	}
	if posting == nil {
		return nil, fmt.Errorf("posting is required")
	}

	candidateJSON, err := json.MarshalIndent(toCandidatePayload(candidate), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	postingJSON, err := json.MarshalIndent(toPostingPayload(posting), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal posting payload: %w", err)
	}

	prompt := buildPrompt(string(candidateJSON), string(postingJSON))

	a.logger.Debug("gemini generate content request",
		zap.String("title", posting.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("title", posting.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	note, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	note.Raw = raw
	return note, nil
}

func toCandidatePayload(c *matching.CandidateProfile) candidatePayload {
	return candidatePayload{
		Title:          c.Title,
		Seniority:      string(c.Seniority),
		Area:           c.Area,
		Skills:         c.Skills.Items(),
		English:        c.English.String(),
		Spanish:        c.Spanish.String(),
		OtherLanguages: c.OtherLanguages,
		Travel:         c.Travel.String(),
		Equipment:      c.Equipment.String(),
	}
}

func toPostingPayload(p *matching.ScoredJobPosting) postingPayload {
	dims := make([]dimensionPayload, 0, len(p.Dimensions))
	for _, d := range p.Dimensions {
		dims = append(dims, dimensionPayload{
			ID:         d.ID,
			Weight:     d.Weight,
			Similarity: d.Similarity,
			Skipped:    d.Skipped,
		})
	}

	return postingPayload{
		Title:         p.Title,
		Company:       p.Company,
		Seniority:     string(p.Seniority),
		Area:          p.Area,
		Skills:        p.Skills.Items(),
		English:       p.English.String(),
		Spanish:       p.Spanish.String(),
		Travel:        p.Travel.String(),
		Equipment:     p.Equipment.String(),
		Description:   p.Description,
		Compatibility: p.Compatibility,
		Dimensions:    dims,
	}
}

func buildPrompt(candidateJSON, postingJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_JSON}}\n\nPosting:\n{{POSTING_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_JSON}}", candidateJSON)
	prompt = strings.ReplaceAll(prompt, "{{POSTING_JSON}}", postingJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Note, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	summary := coerceString(data["summary"])
	if summary == "" {
		return nil, fmt.Errorf("parse gemini response: summary is empty")
	}

	return &ai.Note{
		Summary: summary,
		Gaps:    coerceStrings(data["gaps"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
