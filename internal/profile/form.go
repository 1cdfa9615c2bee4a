package profile

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/job-matcher/internal/matching"
)

// Form holds the answers of one candidate submission as typed by the candidate.
type Form struct {
	Name           string `mapstructure:"name" json:"name,omitempty"`
	Email          string `mapstructure:"email" json:"email,omitempty"`
	Title          string `mapstructure:"title" json:"title,omitempty"`
	Seniority      string `mapstructure:"seniority" json:"seniority,omitempty"`
	Area           string `mapstructure:"area" json:"area,omitempty"`
	English        string `mapstructure:"english" json:"english,omitempty"`
	Spanish        string `mapstructure:"spanish" json:"spanish,omitempty"`
	OtherLanguages string `mapstructure:"other_languages" json:"other_languages,omitempty"`
	// Skills is either a comma separated string or a list of strings.
	Skills    any `mapstructure:"skills" json:"skills,omitempty"`
	Travel    any `mapstructure:"travel" json:"travel,omitempty"`
	Equipment any `mapstructure:"equipment" json:"equipment,omitempty"`
}

// FromMap decodes loosely typed answers keyed by canonical names or known headers.
func FromMap(raw map[string]any) (*Form, error) {
	var form Form
	cfg := &mapstructure.DecoderConfig{
		Result:           &form,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(Canonicalize(raw)); err != nil {
		return nil, fmt.Errorf("decoding candidate form: %w", err)
	}
	return &form, nil
}

// LoadFile reads a candidate form from a YAML, JSON or TOML file.
func LoadFile(path string) (*Form, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("candidate file is not configured")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading candidate file %q: %w", path, err)
	}

	return FromMap(v.AllSettings())
}

// Profile converts the answers into a candidate profile. Only structural problems
// (for example skills given as a number) are errors; blank answers simply stay unset.
func (f *Form) Profile() (matching.CandidateProfile, error) {
	if f == nil {
		return matching.CandidateProfile{}, fmt.Errorf("candidate form is required")
	}

	skills, err := SkillsFromValue(f.Skills)
	if err != nil {
		return matching.CandidateProfile{}, err
	}
	travel, err := FlagFromValue(f.Travel, ParseFlag)
	if err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("travel: %w", err)
	}
	equipment, err := FlagFromValue(f.Equipment, ParseFlag)
	if err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("equipment: %w", err)
	}

	return matching.CandidateProfile{
		Title:          CleanText(f.Title),
		Seniority:      ParseSeniority(CleanText(f.Seniority)),
		Area:           CleanText(f.Area),
		English:        ParseLevel(f.English),
		Spanish:        ParseLevel(f.Spanish),
		OtherLanguages: CleanText(f.OtherLanguages),
		Skills:         matching.NewSkillSet(skills...),
		Travel:         travel,
		Equipment:      equipment,
	}, nil
}
