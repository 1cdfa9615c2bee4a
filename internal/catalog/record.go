package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/profile"
)

// record is one catalog row after column normalization and before type conversion.
type record struct {
	Title          string `mapstructure:"title" validate:"required"`
	Seniority      string `mapstructure:"seniority"`
	Area           string `mapstructure:"area"`
	Skills         any    `mapstructure:"skills"`
	English        string `mapstructure:"english"`
	Spanish        string `mapstructure:"spanish"`
	OtherLanguages string `mapstructure:"other_languages"`
	Travel         any    `mapstructure:"travel"`
	Equipment      any    `mapstructure:"equipment"`
	Company        string `mapstructure:"company"`
	Description    string `mapstructure:"description"`
	Salary         any    `mapstructure:"salary"`
}

var validate = validator.New()

// decodeRecord turns a raw row into a job posting. Errors mean the row is structurally
// broken and must be left out of the catalog.
func decodeRecord(raw map[string]any) (matching.JobPosting, error) {
	var r record
	cfg := &mapstructure.DecoderConfig{
		Result:           &r,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return matching.JobPosting{}, err
	}
	if err := decoder.Decode(profile.Canonicalize(raw)); err != nil {
		return matching.JobPosting{}, err
	}

	r.Title = strings.TrimSpace(r.Title)
	if err := validate.Struct(&r); err != nil {
		return matching.JobPosting{}, validationError(err)
	}

	skills, err := profile.SkillsFromValue(r.Skills)
	if err != nil {
		return matching.JobPosting{}, err
	}
	travel, err := profile.FlagFromValue(r.Travel, profile.ParseFlag)
	if err != nil {
		return matching.JobPosting{}, fmt.Errorf("travel: %w", err)
	}
	equipment, err := profile.FlagFromValue(r.Equipment, profile.ParseEquipment)
	if err != nil {
		return matching.JobPosting{}, fmt.Errorf("equipment: %w", err)
	}
	salary, err := profile.TextFromValue(r.Salary)
	if err != nil {
		return matching.JobPosting{}, fmt.Errorf("salary: %w", err)
	}

	return matching.JobPosting{
		Title:          r.Title,
		Seniority:      profile.ParseSeniority(profile.CleanText(r.Seniority)),
		Area:           profile.CleanText(r.Area),
		Skills:         matching.NewSkillSet(skills...),
		English:        profile.ParseLevel(r.English),
		Spanish:        profile.ParseLevel(r.Spanish),
		OtherLanguages: profile.CleanText(r.OtherLanguages),
		Travel:         travel,
		Equipment:      equipment,
		Company:        strings.TrimSpace(r.Company),
		Description:    strings.TrimSpace(r.Description),
		Salary:         salary,
	}, nil
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("missing required field: %s", strings.Join(fields, ", "))
}
