// Package form asks a candidate the matching questions in the terminal.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/job-matcher/internal/profile"
)

// ErrAborted is returned when the candidate interrupts the form.
var ErrAborted = errors.New("form aborted")

// Prompter asks single questions.
type Prompter interface {
	// Ask reads free text. def is offered as the default answer.
	Ask(label, def string) (string, error)
	// Choose returns one of items.
	Choose(label string, items []string) (string, error)
}

var (
	levelChoices     = []string{"Nenhum", "Básico", "Intermediário", "Avançado", "Fluente"}
	seniorityChoices = []string{"Júnior", "Pleno", "Sênior"}
	yesNoChoices     = []string{"Sim", "Não"}
)

type question struct {
	field   string
	label   string
	choices []string
}

var questions = []question{
	{field: profile.FieldName, label: "Nome"},
	{field: profile.FieldEmail, label: "E-mail"},
	{field: profile.FieldTitle, label: "Cargo desejado"},
	{field: profile.FieldSeniority, label: "Nível", choices: seniorityChoices},
	{field: profile.FieldArea, label: "Área de interesse"},
	{field: profile.FieldSkills, label: "Habilidades (separadas por vírgula)"},
	{field: profile.FieldEnglish, label: "Inglês", choices: levelChoices},
	{field: profile.FieldSpanish, label: "Espanhol", choices: levelChoices},
	{field: profile.FieldOtherLanguages, label: "Outros idiomas"},
	{field: profile.FieldTravel, label: "Disponibilidade para viagem", choices: yesNoChoices},
	{field: profile.FieldEquipment, label: "Possui equipamento próprio", choices: yesNoChoices},
}

// Collect walks the candidate through every question. Answers from defaults are
// offered as defaults for free text questions.
func Collect(p Prompter, defaults *profile.Form) (*profile.Form, error) {
	answers := make(map[string]any, len(questions))
	prefill := defaultAnswers(defaults)

	for _, q := range questions {
		var (
			answer string
			err    error
		)
		if len(q.choices) > 0 {
			answer, err = p.Choose(q.label, q.choices)
		} else {
			answer, err = p.Ask(q.label, prefill[q.field])
		}
		if err != nil {
			if err = aborted(err); errors.Is(err, ErrAborted) {
				return nil, err
			}
			return nil, fmt.Errorf("asking %q: %w", q.label, err)
		}
		answers[q.field] = strings.TrimSpace(answer)
	}

	return profile.FromMap(answers)
}

func defaultAnswers(f *profile.Form) map[string]string {
	if f == nil {
		return nil
	}
	skills, _ := profile.SkillsFromValue(f.Skills)
	return map[string]string{
		profile.FieldName:           f.Name,
		profile.FieldEmail:          f.Email,
		profile.FieldTitle:          f.Title,
		profile.FieldArea:           f.Area,
		profile.FieldSkills:         strings.Join(skills, ", "),
		profile.FieldOtherLanguages: f.OtherLanguages,
	}
}

// Terminal is a Prompter backed by promptui.
type Terminal struct{}

func (Terminal) Ask(label, def string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	result, err := prompt.Run()
	return result, aborted(err)
}

func (Terminal) Choose(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, result, err := prompt.Run()
	return result, aborted(err)
}

// aborted maps promptui's interrupt and EOF errors to ErrAborted.
func aborted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}
