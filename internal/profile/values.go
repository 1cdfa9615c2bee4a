// Package profile turns raw answers (form fields, spreadsheet cells, config values)
// into the typed values the matching core works with.
package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/utils"
)

var levels = map[string]matching.Level{
	"nenhum":        matching.LevelNone,
	"nenhuma":       matching.LevelNone,
	"none":          matching.LevelNone,
	"nao":           matching.LevelNone,
	"nao exigido":   matching.LevelNone,
	"basico":        matching.LevelBasic,
	"basic":         matching.LevelBasic,
	"intermediario": matching.LevelIntermediate,
	"intermediate":  matching.LevelIntermediate,
	"avancado":      matching.LevelAdvanced,
	"advanced":      matching.LevelAdvanced,
	"fluente":       matching.LevelFluent,
	"fluent":        matching.LevelFluent,
	"nativo":        matching.LevelFluent,
	"native":        matching.LevelFluent,
}

var seniorities = map[string]matching.Seniority{
	"junior": matching.SeniorityJunior,
	"jr":     matching.SeniorityJunior,
	"pleno":  matching.SeniorityMid,
	"mid":    matching.SeniorityMid,
	"middle": matching.SeniorityMid,
	"senior": matching.SenioritySenior,
	"sr":     matching.SenioritySenior,
}

var (
	yes = map[string]struct{}{"sim": {}, "s": {}, "yes": {}, "y": {}, "true": {}, "1": {}}
	no  = map[string]struct{}{"nao": {}, "n": {}, "no": {}, "false": {}, "0": {}}
)

// Placeholders used in spreadsheets for "nothing here".
var blanks = map[string]struct{}{"": {}, "-": {}, "n/a": {}, "na": {}, "nenhum": {}, "nenhuma": {}, "none": {}, "nao": {}}

// ParseLevel maps a proficiency answer to an ordinal level. Unknown or empty answers
// yield LevelUnknown, which the scorer treats as missing.
func ParseLevel(s string) matching.Level {
	return levels[utils.Key(s)]
}

// ParseSeniority maps known tier spellings (Júnior, Pleno, Sênior, ...) to canonical
// tiers and keeps anything else as trimmed text.
func ParseSeniority(s string) matching.Seniority {
	s = strings.TrimSpace(s)
	if tier, ok := seniorities[utils.Key(s)]; ok {
		return tier
	}
	return matching.Seniority(s)
}

// ParseFlag maps yes/no answers in Portuguese or English. Unknown answers are unset.
func ParseFlag(s string) matching.Flag {
	key := utils.Key(s)
	if _, ok := yes[key]; ok {
		return matching.FlagYes
	}
	if _, ok := no[key]; ok {
		return matching.FlagNo
	}
	return matching.FlagUnset
}

// ParseEquipment reads an equipment requirement. Besides yes/no it understands
// phrases such as "Equipamento não necessário" or "not required".
func ParseEquipment(s string) matching.Flag {
	if flag := ParseFlag(s); flag.IsSet() {
		return flag
	}
	key := utils.Key(s)
	switch {
	case key == "":
		return matching.FlagUnset
	case strings.Contains(key, "nao necessario"), strings.Contains(key, "not required"),
		strings.Contains(key, "nao obrigatorio"), strings.Contains(key, "fornecido"):
		return matching.FlagNo
	case strings.Contains(key, "necessario"), strings.Contains(key, "required"),
		strings.Contains(key, "obrigatorio"), strings.Contains(key, "proprio"):
		return matching.FlagYes
	default:
		return matching.FlagUnset
	}
}

// CleanText trims s and turns placeholder answers into the empty string.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := blanks[utils.Key(s)]; ok {
		return ""
	}
	return s
}

// SplitSkills splits a comma separated list, trimming entries and dropping empty ones.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SkillsFromValue accepts either a comma separated string or a list of strings.
// Any other shape is a structural error.
func SkillsFromValue(v any) ([]string, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case string:
		return SplitSkills(typed), nil
	case []string:
		out := make([]string, 0, len(typed))
		for _, s := range typed {
			out = append(out, SplitSkills(s)...)
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(typed))
		for i, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("skills[%d]: expected text, got %T", i, item)
			}
			out = append(out, SplitSkills(s)...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("skills: expected text or list of text, got %T", v)
	}
}

// FlagFromValue accepts booleans and yes/no text.
func FlagFromValue(v any, parse func(string) matching.Flag) (matching.Flag, error) {
	switch typed := v.(type) {
	case nil:
		return matching.FlagUnset, nil
	case bool:
		return matching.FlagOf(typed), nil
	case string:
		return parse(typed), nil
	default:
		return matching.FlagUnset, fmt.Errorf("expected yes/no, got %T", v)
	}
}

// TextFromValue renders scalars as text. It is used for loosely typed cells such as salary.
func TextFromValue(v any) (string, error) {
	switch typed := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(typed), nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case uint64:
		return strconv.FormatUint(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		return "", fmt.Errorf("expected text, got %T", v)
	}
}
