package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/job-matcher/internal/matching"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  matching.Level
	}{
		{input: "Nenhum", want: matching.LevelNone},
		{input: "Básico", want: matching.LevelBasic},
		{input: "basico", want: matching.LevelBasic},
		{input: "Intermediário", want: matching.LevelIntermediate},
		{input: " INTERMEDIATE ", want: matching.LevelIntermediate},
		{input: "Avançado", want: matching.LevelAdvanced},
		{input: "Fluente", want: matching.LevelFluent},
		{input: "", want: matching.LevelUnknown},
		{input: "Klingon", want: matching.LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ParseLevel(tt.input); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if !ParseLevel("Intermediário").Satisfies(ParseLevel("Básico")) {
		t.Fatalf("expected intermediate to satisfy basic")
	}
}

func TestParseSeniorityAndFlags(t *testing.T) {
	t.Parallel()

	if got := ParseSeniority("Sênior"); got != matching.SenioritySenior {
		t.Fatalf("unexpected seniority: %q", got)
	}
	if got := ParseSeniority("Pleno"); got != matching.SeniorityMid {
		t.Fatalf("unexpected seniority: %q", got)
	}
	if got := ParseSeniority(" Estágio "); got != "Estágio" {
		t.Fatalf("expected unknown tier to be kept, got %q", got)
	}

	flags := []struct {
		input     string
		flag      matching.Flag
		equipment matching.Flag
	}{
		{input: "Sim", flag: matching.FlagYes, equipment: matching.FlagYes},
		{input: "não", flag: matching.FlagNo, equipment: matching.FlagNo},
		{input: "Equipamento não necessário", flag: matching.FlagUnset, equipment: matching.FlagNo},
		{input: "Necessário", flag: matching.FlagUnset, equipment: matching.FlagYes},
		{input: "not required", flag: matching.FlagUnset, equipment: matching.FlagNo},
		{input: "", flag: matching.FlagUnset, equipment: matching.FlagUnset},
		{input: "talvez", flag: matching.FlagUnset, equipment: matching.FlagUnset},
	}
	for _, tt := range flags {
		if got := ParseFlag(tt.input); got != tt.flag {
			t.Fatalf("ParseFlag(%q) = %v, want %v", tt.input, got, tt.flag)
		}
		if got := ParseEquipment(tt.input); got != tt.equipment {
			t.Fatalf("ParseEquipment(%q) = %v, want %v", tt.input, got, tt.equipment)
		}
	}
}

func TestSkillsFromValue(t *testing.T) {
	t.Parallel()

	got, err := SkillsFromValue(" python, SQL ,, spark ,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got, "|") != "python|SQL|spark" {
		t.Fatalf("unexpected tokens: %q", got)
	}

	got, err = SkillsFromValue([]any{"go", "docker, k8s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %q", got)
	}

	if _, err := SkillsFromValue(42); err == nil {
		t.Fatalf("expected error for numeric skills")
	}
	if _, err := SkillsFromValue([]any{"go", 1}); err == nil {
		t.Fatalf("expected error for mixed list")
	}
}

func TestCanonicalKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Título":          FieldTitle,
		"Outros Idiomas":  FieldOtherLanguages,
		"other-languages": FieldOtherLanguages,
		"other_languages": FieldOtherLanguages,
		"Nível de Inglês": FieldEnglish,
		"Descrição":       FieldDescription,
		"Salário":         FieldSalary,
		"Data de Criação": "data_de_criacao",
	}
	for input, want := range tests {
		if got := CanonicalKey(input); got != want {
			t.Fatalf("CanonicalKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonicalizeCollisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
		want any
	}{
		{name: "lexical order", raw: map[string]any{"Título": "Analista de Dados", "Cargo": "Engenheiro", "Vaga": "Estagiário"}, want: "Engenheiro"},
		{name: "canonical key first", raw: map[string]any{"Título": "Analista", "title": "Data Analyst", "Cargo": "Engenheiro"}, want: "Data Analyst"},
		{name: "empty values skipped", raw: map[string]any{"Cargo": "  ", "Título": "Analista de Dados", "title": ""}, want: "Analista de Dados"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for i := 0; i < 50; i++ {
				if got := Canonicalize(tt.raw)[FieldTitle]; got != tt.want {
					t.Fatalf("run %d: title = %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}

func TestFormProfile(t *testing.T) {
	t.Parallel()

	form, err := FromMap(map[string]any{
		"Nome":           "Ana",
		"Cargo desejado": "Backend Developer",
		"Nível":          "Júnior",
		"Área":           "Data",
		"Inglês":         "Intermediário",
		"Espanhol":       "Nenhum",
		"Outros idiomas": "nenhum",
		"Habilidades":    "Python, SQL",
		"Viagem":         true,
		"Equipamento":    "Não",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Name != "Ana" {
		t.Fatalf("unexpected name: %q", form.Name)
	}

	p, err := form.Profile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Title != "Backend Developer" || p.Seniority != matching.SeniorityJunior || p.Area != "Data" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.English != matching.LevelIntermediate || p.Spanish != matching.LevelNone {
		t.Fatalf("unexpected levels: %v %v", p.English, p.Spanish)
	}
	if p.OtherLanguages != "" {
		t.Fatalf("expected placeholder languages to be cleared, got %q", p.OtherLanguages)
	}
	if p.Skills.Len() != 2 || !p.Skills.Contains("sql") {
		t.Fatalf("unexpected skills: %v", p.Skills)
	}
	if p.Travel != matching.FlagYes || p.Equipment != matching.FlagNo {
		t.Fatalf("unexpected flags: %v %v", p.Travel, p.Equipment)
	}
}

func TestFormProfileStructuralErrors(t *testing.T) {
	t.Parallel()

	if _, err := (&Form{Skills: map[string]any{"a": 1}}).Profile(); err == nil {
		t.Fatalf("expected error for skills map")
	}
	if _, err := (&Form{Travel: 3.5}).Profile(); err == nil {
		t.Fatalf("expected error for numeric travel")
	}
	if _, err := FromMap(map[string]any{"title": map[string]any{"x": 1}}); err == nil {
		t.Fatalf("expected error for non text title")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.yaml")
	content := `title: Data Engineer
seniority: Senior
english: Fluente
other-languages: Francês
skills:
  - python
  - airflow
travel: "não"
equipment: sim
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing candidate file: %v", err)
	}

	form, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := form.Profile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Title != "Data Engineer" || p.English != matching.LevelFluent || p.OtherLanguages != "Francês" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.Skills.Len() != 2 || p.Travel != matching.FlagNo || p.Equipment != matching.FlagYes {
		t.Fatalf("unexpected profile: %+v", p)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadFile(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
