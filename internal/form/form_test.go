package form

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/profile"
)

type scripted struct {
	answers map[string]string
	asked   []string
	fail    error
}

func (s *scripted) Ask(label, def string) (string, error) {
	s.asked = append(s.asked, label)
	if s.fail != nil {
		return "", s.fail
	}
	if answer, ok := s.answers[label]; ok {
		return answer, nil
	}
	return def, nil
}

func (s *scripted) Choose(label string, items []string) (string, error) {
	s.asked = append(s.asked, label)
	if s.fail != nil {
		return "", s.fail
	}
	answer, ok := s.answers[label]
	if !ok {
		return items[0], nil
	}
	return answer, nil
}

func TestCollect(t *testing.T) {
	t.Parallel()

	p := &scripted{answers: map[string]string{
		"Nome":                                "Ana",
		"Cargo desejado":                      "Backend Developer",
		"Nível":                               "Pleno",
		"Habilidades (separadas por vírgula)": "Go, SQL",
		"Inglês":                              "Avançado",
		"Espanhol":                            "Nenhum",
		"Disponibilidade para viagem":         "Não",
		"Possui equipamento próprio":          "Sim",
	}}

	f, err := Collect(p, &profile.Form{Area: "Dados"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.asked) != len(questions) {
		t.Fatalf("expected %d questions, got %d", len(questions), len(p.asked))
	}

	c, err := f.Profile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Title != "Backend Developer" || c.Seniority != matching.SeniorityMid || c.Area != "Dados" {
		t.Fatalf("unexpected profile: %+v", c)
	}
	if c.English != matching.LevelAdvanced || c.Spanish != matching.LevelNone {
		t.Fatalf("unexpected levels: %v %v", c.English, c.Spanish)
	}
	if c.Skills.Len() != 2 || c.Travel != matching.FlagNo || c.Equipment != matching.FlagYes {
		t.Fatalf("unexpected profile: %+v", c)
	}
}

func TestCollectErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fail    error
		aborted bool
	}{
		{name: "interrupt", fail: promptui.ErrInterrupt, aborted: true},
		{name: "eof", fail: promptui.ErrEOF, aborted: true},
		{name: "other", fail: errors.New("terminal gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Collect(&scripted{fail: tt.fail}, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrAborted) != tt.aborted {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
