package matching

import (
	"sort"
	"strings"

	"github.com/spigell/job-matcher/internal/utils"
)

// Level is an ordinal language proficiency. The zero value means the level was not provided.
type Level int

const (
	LevelUnknown Level = iota
	LevelNone
	LevelBasic
	LevelIntermediate
	LevelAdvanced
	LevelFluent
)

var levelNames = map[Level]string{
	LevelUnknown:      "",
	LevelNone:         "none",
	LevelBasic:        "basic",
	LevelIntermediate: "intermediate",
	LevelAdvanced:     "advanced",
	LevelFluent:       "fluent",
}

func (l Level) String() string { return levelNames[l] }

// Known reports whether the level carries a value.
func (l Level) Known() bool { return l > LevelUnknown && l <= LevelFluent }

// Satisfies reports whether l meets the required level.
func (l Level) Satisfies(required Level) bool { return l >= required }

// Seniority is a seniority tier. Known tiers are normalized to the constants below,
// anything else is kept as provided. Empty means not provided.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Flag is a yes/no answer that may be missing.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagNo
	FlagYes
)

// FlagOf converts a plain bool into a set Flag.
func FlagOf(b bool) Flag {
	if b {
		return FlagYes
	}
	return FlagNo
}

func (f Flag) IsSet() bool { return f == FlagNo || f == FlagYes }

func (f Flag) Bool() bool { return f == FlagYes }

func (f Flag) String() string {
	switch f {
	case FlagYes:
		return "yes"
	case FlagNo:
		return "no"
	default:
		return ""
	}
}

// SkillSet is a case-folded, de-duplicated and sorted set of skill tokens.
// The zero value is an empty set.
type SkillSet struct {
	items []string
}

// NewSkillSet builds a set from already split tokens. Blank tokens are discarded.
func NewSkillSet(tokens ...string) SkillSet {
	seen := make(map[string]struct{}, len(tokens))
	items := make([]string, 0, len(tokens))
	for _, token := range tokens {
		key := utils.Fold(token)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, key)
	}
	sort.Strings(items)
	return SkillSet{items: items}
}

func (s SkillSet) Len() int { return len(s.items) }

// Items returns a copy of the tokens in sorted order.
func (s SkillSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s SkillSet) Contains(token string) bool {
	key := utils.Fold(token)
	i := sort.SearchStrings(s.items, key)
	return i < len(s.items) && s.items[i] == key
}

// Intersect returns the number of tokens present in both sets.
func (s SkillSet) Intersect(other SkillSet) int {
	count := 0
	for _, item := range s.items {
		if other.Contains(item) {
			count++
		}
	}
	return count
}

func (s SkillSet) String() string { return strings.Join(s.items, ", ") }

// CandidateProfile is what a candidate reports about themselves.
type CandidateProfile struct {
	Title          string
	Seniority      Seniority
	Area           string
	English        Level
	Spanish        Level
	OtherLanguages string
	Skills         SkillSet
	Travel         Flag
	Equipment      Flag
}

// JobPosting is one entry of the job catalog.
type JobPosting struct {
	Title          string
	Seniority      Seniority
	Area           string
	Skills         SkillSet
	English        Level
	Spanish        Level
	OtherLanguages string
	Travel         Flag
	// Equipment is FlagNo when the posting states equipment is not required.
	Equipment   Flag
	Company     string
	Description string
	Salary      string
}

// ScoredJobPosting is a posting annotated with its compatibility for one candidate.
type ScoredJobPosting struct {
	JobPosting
	Compatibility float64
	Dimensions    []DimensionResult
}
