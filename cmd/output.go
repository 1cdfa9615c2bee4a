package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/form"
	"github.com/spigell/job-matcher/internal/matching"
)

const (
	outputText = "text"
	outputJSON = "json"

	promptBack = "back"
)

type postingView struct {
	Rank          int               `json:"rank"`
	Title         string            `json:"title"`
	Company       string            `json:"company,omitempty"`
	Area          string            `json:"area,omitempty"`
	Seniority     string            `json:"seniority,omitempty"`
	Skills        []string          `json:"skills,omitempty"`
	Requirements  map[string]string `json:"requirements,omitempty"`
	Description   string            `json:"description,omitempty"`
	Salary        string            `json:"salary,omitempty"`
	Compatibility float64           `json:"compatibility"`
	Dimensions    []dimensionView   `json:"dimensions"`
	Note          *noteView         `json:"note,omitempty"`
}

type dimensionView struct {
	ID         string  `json:"id"`
	Weight     float64 `json:"weight"`
	Similarity float64 `json:"similarity"`
	Skipped    bool    `json:"skipped,omitempty"`
}

type noteView struct {
	Summary string   `json:"summary"`
	Gaps    []string `json:"gaps,omitempty"`
}

type resultView struct {
	SubmissionID string        `json:"submission_id,omitempty"`
	Postings     []postingView `json:"postings"`
}

func newResultView(result *matchResult) resultView {
	view := resultView{Postings: make([]postingView, 0, len(result.Ranked))}
	if result.Submission != nil {
		view.SubmissionID = result.Submission.ID
	}
	for i := range result.Ranked {
		view.Postings = append(view.Postings, newPostingView(i, &result.Ranked[i], noteAt(result.Notes, i)))
	}
	return view
}

func newPostingView(i int, p *matching.ScoredJobPosting, note *ai.Note) postingView {
	view := postingView{
		Rank:          i + 1,
		Title:         p.Title,
		Company:       p.Company,
		Area:          p.Area,
		Seniority:     string(p.Seniority),
		Skills:        p.Skills.Items(),
		Requirements:  requirements(&p.JobPosting),
		Description:   p.Description,
		Salary:        p.Salary,
		Compatibility: p.Compatibility,
		Dimensions:    make([]dimensionView, 0, len(p.Dimensions)),
	}
	for _, d := range p.Dimensions {
		view.Dimensions = append(view.Dimensions, dimensionView(d))
	}
	if note != nil {
		view.Note = &noteView{Summary: note.Summary, Gaps: note.Gaps}
	}
	return view
}

func requirements(j *matching.JobPosting) map[string]string {
	out := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set(matching.DimensionEnglish, j.English.String())
	set(matching.DimensionSpanish, j.Spanish.String())
	set(matching.DimensionOtherLanguages, j.OtherLanguages)
	set(matching.DimensionTravel, j.Travel.String())
	set(matching.DimensionEquipment, equipmentRequirement(j.Equipment))
	return out
}

// equipmentRequirement reads a posting's equipment flag as whether the company expects
// the candidate to bring their own.
func equipmentRequirement(f matching.Flag) string {
	switch f {
	case matching.FlagYes:
		return "required"
	case matching.FlagNo:
		return "not required"
	default:
		return ""
	}
}

func noteAt(notes []*ai.Note, i int) *ai.Note {
	if i < len(notes) {
		return notes[i]
	}
	return nil
}

func render(w io.Writer, format string, result *matchResult) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputText:
		return renderText(w, newResultView(result))
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newResultView(result))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, view resultView) error {
	var b strings.Builder
	for _, p := range view.Postings {
		writePosting(&b, p)
	}
	if view.SubmissionID != "" {
		fmt.Fprintf(&b, "submission: %s\n", view.SubmissionID)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePosting(b *strings.Builder, p postingView) {
	fmt.Fprintf(b, "%d. %s", p.Rank, p.Title)
	if p.Company != "" {
		fmt.Fprintf(b, " (%s)", p.Company)
	}
	fmt.Fprintf(b, "  %s%%\n", formatScore(p.Compatibility))

	line := make([]string, 0, 3)
	if p.Area != "" {
		line = append(line, "area: "+p.Area)
	}
	if p.Seniority != "" {
		line = append(line, "seniority: "+p.Seniority)
	}
	if len(p.Skills) > 0 {
		line = append(line, "skills: "+strings.Join(p.Skills, ", "))
	}
	writeLine(b, line)

	reqs := make([]string, 0, len(p.Requirements))
	for _, key := range []string{
		matching.DimensionEnglish,
		matching.DimensionSpanish,
		matching.DimensionOtherLanguages,
		matching.DimensionTravel,
		matching.DimensionEquipment,
	} {
		if value, ok := p.Requirements[key]; ok {
			reqs = append(reqs, strings.ReplaceAll(key, "_", " ")+": "+value)
		}
	}
	writeLine(b, reqs)

	if p.Salary != "" {
		writeLine(b, []string{"salary: " + p.Salary})
	}
	if p.Description != "" {
		writeLine(b, []string{p.Description})
	}
	if p.Note != nil {
		writeLine(b, []string{"note: " + p.Note.Summary})
		if len(p.Note.Gaps) > 0 {
			writeLine(b, []string{"gaps: " + strings.Join(p.Note.Gaps, "; ")})
		}
	}
}

func writeLine(b *strings.Builder, parts []string) {
	if len(parts) == 0 {
		return
	}
	b.WriteString("   ")
	b.WriteString(strings.Join(parts, " | "))
	b.WriteString("\n")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeBreakdown(w io.Writer, p postingView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s%%\n", p.Title, formatScore(p.Compatibility))
	for _, d := range p.Dimensions {
		if d.Skipped {
			fmt.Fprintf(&b, "   %-16s weight %-4s skipped\n", d.ID, strconv.FormatFloat(d.Weight, 'f', -1, 64))
			continue
		}
		fmt.Fprintf(&b, "   %-16s weight %-4s similarity %s\n", d.ID, strconv.FormatFloat(d.Weight, 'f', -1, 64), strconv.FormatFloat(d.Similarity, 'f', 2, 64))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// browse lets the candidate pick ranked postings to see their per-dimension breakdown.
func browse(p form.Prompter, w io.Writer, result *matchResult) error {
	view := newResultView(result)

	items := make([]string, 0, len(view.Postings)+1)
	byLabel := make(map[string]postingView, len(view.Postings))
	for _, posting := range view.Postings {
		label := fmt.Sprintf("%d. %s", posting.Rank, posting.Title)
		if posting.Company != "" {
			label += " / " + posting.Company
		}
		items = append(items, label)
		byLabel[label] = posting
	}
	items = append(items, promptBack)

	for {
		selected, err := p.Choose("Choose a posting to see the breakdown", items)
		if err != nil {
			return err
		}
		if selected == promptBack {
			return nil
		}

		posting, ok := byLabel[selected]
		if !ok {
			return fmt.Errorf("there is no such posting %q", selected)
		}
		if err := writeBreakdown(w, posting); err != nil {
			return err
		}
	}
}
