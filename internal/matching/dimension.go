package matching

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/job-matcher/internal/utils"
)

// Dimension identifiers, in default table order.
const (
	DimensionTitle          = "title"
	DimensionSeniority      = "seniority"
	DimensionArea           = "area"
	DimensionEnglish        = "english"
	DimensionSpanish        = "spanish"
	DimensionOtherLanguages = "other_languages"
	DimensionEquipment      = "equipment"
	DimensionTravel         = "travel"
	DimensionSkills         = "skills"
	DimensionSkillsText     = "skills_text"
)

// Comparator returns the similarity of one dimension in [0,1]. ok is false when either
// side has no usable value; the dimension is then left out of both sums.
type Comparator func(c *CandidateProfile, j *JobPosting) (similarity float64, ok bool)

// Dimension is one row of the scoring table.
type Dimension struct {
	ID      string
	Weight  float64
	Compare Comparator
	// Method is a short human readable description of the comparison.
	Method string
}

// EmptySkillsPolicy decides what happens when the candidate lists no skills.
type EmptySkillsPolicy string

const (
	// EmptySkillsSkip leaves the skill dimensions out of the score.
	EmptySkillsSkip EmptySkillsPolicy = "skip"
	// EmptySkillsZero scores the skill dimensions as 0 with full weight.
	EmptySkillsZero EmptySkillsPolicy = "zero"
)

// Config drives the construction of the default dimension table.
type Config struct {
	// Weights overrides default weights by dimension id. A zero weight disables the dimension.
	Weights        map[string]float64 `mapstructure:"weights"`
	SkillsStrategy string             `mapstructure:"skills-strategy"`
	TextStrategy   string             `mapstructure:"text-strategy"`
	EmptySkills    EmptySkillsPolicy  `mapstructure:"empty-skills"`
}

// DefaultWeights holds the weight of every dimension in the default table.
var DefaultWeights = map[string]float64{
	DimensionTitle:          2,
	DimensionSeniority:      1,
	DimensionArea:           1,
	DimensionEnglish:        1,
	DimensionSpanish:        1,
	DimensionOtherLanguages: 1,
	DimensionEquipment:      1,
	DimensionTravel:         1,
	DimensionSkills:         3,
	DimensionSkillsText:     2,
}

// DefaultConfig returns the configuration of the default table.
func DefaultConfig() *Config {
	return &Config{
		SkillsStrategy: StrategyOverlap,
		TextStrategy:   StrategyContainment,
		EmptySkills:    EmptySkillsSkip,
	}
}

// Dimensions builds the ordered dimension table described by cfg. A nil cfg yields the defaults.
func Dimensions(cfg *Config) ([]Dimension, error) {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}

	for id, weight := range cfg.Weights {
		if _, ok := DefaultWeights[id]; !ok {
			return nil, fmt.Errorf("unknown dimension %q", id)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return nil, fmt.Errorf("dimension %q: weight must be a non-negative number, got %v", id, weight)
		}
	}

	skillsName := firstNonEmpty(cfg.SkillsStrategy, defaults.SkillsStrategy)
	skills, err := NewSkillStrategy(skillsName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DimensionSkills, err)
	}
	textName := firstNonEmpty(cfg.TextStrategy, defaults.TextStrategy)
	text, err := NewSkillStrategy(textName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DimensionSkillsText, err)
	}

	policy := EmptySkillsPolicy(strings.ToLower(strings.TrimSpace(string(cfg.EmptySkills))))
	switch policy {
	case "":
		policy = defaults.EmptySkills
	case EmptySkillsSkip, EmptySkillsZero:
	default:
		return nil, fmt.Errorf("unknown empty skills policy %q", cfg.EmptySkills)
	}

	table := []Dimension{
		{ID: DimensionTitle, Compare: compareTitle, Method: "difflib ratio"},
		{ID: DimensionSeniority, Compare: compareSeniority, Method: "equal, case-insensitive"},
		{ID: DimensionArea, Compare: compareArea, Method: "candidate area contained in job area"},
		{ID: DimensionEnglish, Compare: compareLevel(englishOf), Method: "candidate level >= required"},
		{ID: DimensionSpanish, Compare: compareLevel(spanishOf), Method: "candidate level >= required"},
		{ID: DimensionOtherLanguages, Compare: compareOtherLanguages, Method: "required language contained in candidate languages"},
		{ID: DimensionEquipment, Compare: compareEquipment, Method: "owns equipment and job requires it"},
		{ID: DimensionTravel, Compare: compareTravel, Method: "equal"},
		{ID: DimensionSkills, Compare: compareSkills(skills, policy), Method: skills.Name() + ", empty skills: " + string(policy)},
		{ID: DimensionSkillsText, Compare: compareSkills(text, policy), Method: text.Name() + ", empty skills: " + string(policy)},
	}

	active := make([]Dimension, 0, len(table))
	for _, dim := range table {
		dim.Weight = DefaultWeights[dim.ID]
		if weight, ok := cfg.Weights[dim.ID]; ok {
			dim.Weight = weight
		}
		if dim.Weight == 0 {
			continue
		}
		active = append(active, dim)
	}

	return active, nil
}

// Status describes one active dimension for reporting.
type Status struct {
	ID     string
	Weight string
	Method string
}

// Describe returns status entries for the provided dimensions.
func Describe(dims []Dimension) []Status {
	statuses := make([]Status, 0, len(dims))
	for _, dim := range dims {
		statuses = append(statuses, Status{
			ID:     dim.ID,
			Weight: strconv.FormatFloat(dim.Weight, 'f', -1, 64),
			Method: dim.Method,
		})
	}
	return statuses
}

func compareTitle(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if blank(c.Title) || blank(j.Title) {
		return 0, false
	}
	return titleSimilarity(c.Title, j.Title), true
}

func compareSeniority(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if blank(string(c.Seniority)) || blank(string(j.Seniority)) {
		return 0, false
	}
	return boolScore(utils.Fold(string(c.Seniority)) == utils.Fold(string(j.Seniority))), true
}

func compareArea(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if blank(c.Area) || blank(j.Area) {
		return 0, false
	}
	return boolScore(containsFolded(j.Area, c.Area)), true
}

func englishOf(c *CandidateProfile, j *JobPosting) (Level, Level) { return c.English, j.English }

func spanishOf(c *CandidateProfile, j *JobPosting) (Level, Level) { return c.Spanish, j.Spanish }

func compareLevel(pick func(*CandidateProfile, *JobPosting) (Level, Level)) Comparator {
	return func(c *CandidateProfile, j *JobPosting) (float64, bool) {
		has, required := pick(c, j)
		if !has.Known() || !required.Known() {
			return 0, false
		}
		return boolScore(has.Satisfies(required)), true
	}
}

func compareOtherLanguages(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if blank(c.OtherLanguages) || blank(j.OtherLanguages) {
		return 0, false
	}
	return boolScore(containsFolded(c.OtherLanguages, j.OtherLanguages)), true
}

func compareEquipment(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if !c.Equipment.IsSet() || !j.Equipment.IsSet() {
		return 0, false
	}
	return boolScore(c.Equipment.Bool() && j.Equipment.Bool()), true
}

func compareTravel(c *CandidateProfile, j *JobPosting) (float64, bool) {
	if !c.Travel.IsSet() || !j.Travel.IsSet() {
		return 0, false
	}
	return boolScore(c.Travel == j.Travel), true
}

func compareSkills(strategy SkillStrategy, policy EmptySkillsPolicy) Comparator {
	return func(c *CandidateProfile, j *JobPosting) (float64, bool) {
		if c.Skills.Len() == 0 && policy != EmptySkillsZero {
			return 0, false
		}
		similarity, ok := strategy.Similarity(c.Skills, j)
		if !ok {
			return 0, false
		}
		return clamp01(similarity), true
	}
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
