package profile

import (
	"slices"
	"strings"

	"github.com/spigell/job-matcher/internal/utils"
)

// Canonical field names shared by candidate forms and job catalogs.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldTitle          = "title"
	FieldSeniority      = "seniority"
	FieldArea           = "area"
	FieldSkills         = "skills"
	FieldEnglish        = "english"
	FieldSpanish        = "spanish"
	FieldOtherLanguages = "other_languages"
	FieldTravel         = "travel"
	FieldEquipment      = "equipment"
	FieldCompany        = "company"
	FieldDescription    = "description"
	FieldSalary         = "salary"
)

// aliases maps spreadsheet headers, after CanonicalKey's folding, to canonical names.
var aliases = map[string]string{
	"name":                        FieldName,
	"nome":                        FieldName,
	"nome completo":               FieldName,
	"email":                       FieldEmail,
	"e mail":                      FieldEmail,
	"title":                       FieldTitle,
	"titulo":                      FieldTitle,
	"titulo da vaga":              FieldTitle,
	"vaga":                        FieldTitle,
	"cargo":                       FieldTitle,
	"cargo desejado":              FieldTitle,
	"desired title":               FieldTitle,
	"seniority":                   FieldSeniority,
	"nivel":                       FieldSeniority,
	"senioridade":                 FieldSeniority,
	"nivel profissional":          FieldSeniority,
	"area":                        FieldArea,
	"area de interesse":           FieldArea,
	"area de atuacao":             FieldArea,
	"skills":                      FieldSkills,
	"habilidades":                 FieldSkills,
	"habilidades tecnicas":        FieldSkills,
	"competencias":                FieldSkills,
	"competencias tecnicas":       FieldSkills,
	"conhecimentos tecnicos":      FieldSkills,
	"english":                     FieldEnglish,
	"ingles":                      FieldEnglish,
	"nivel de ingles":             FieldEnglish,
	"spanish":                     FieldSpanish,
	"espanhol":                    FieldSpanish,
	"nivel de espanhol":           FieldSpanish,
	"other languages":             FieldOtherLanguages,
	"outros idiomas":              FieldOtherLanguages,
	"outro idioma":                FieldOtherLanguages,
	"travel":                      FieldTravel,
	"viagem":                      FieldTravel,
	"viagens":                     FieldTravel,
	"disponibilidade viagem":      FieldTravel,
	"disponibilidade para viagem": FieldTravel,
	"equipment":                   FieldEquipment,
	"equipamento":                 FieldEquipment,
	"equipamento proprio":         FieldEquipment,
	"company":                     FieldCompany,
	"empresa":                     FieldCompany,
	"description":                 FieldDescription,
	"descricao":                   FieldDescription,
	"descricao da vaga":           FieldDescription,
	"salary":                      FieldSalary,
	"salario":                     FieldSalary,
	"faixa salarial":              FieldSalary,
}

// CanonicalKey maps a header or config key to its canonical field name. Unknown keys
// are returned folded, with separators turned into underscores.
func CanonicalKey(header string) string {
	key := utils.Key(header)
	key = strings.NewReplacer("_", " ", "-", " ", ".", " ", ":", " ").Replace(key)
	key = strings.Join(strings.Fields(key), " ")
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "_")
}

// Canonicalize returns a copy of raw with every key mapped through CanonicalKey.
// When two keys collapse into one, the first non-empty value wins. Keys already in
// canonical form are visited first, then the rest in lexical order.
func Canonicalize(raw map[string]any) map[string]any {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if exactA, exactB := a == CanonicalKey(a), b == CanonicalKey(b); exactA != exactB {
			if exactA {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})

	out := make(map[string]any, len(raw))
	for _, key := range keys {
		value := raw[key]
		canonical := CanonicalKey(key)
		if existing, ok := out[canonical]; ok && !isEmpty(existing) {
			continue
		}
		out[canonical] = value
	}
	return out
}

func isEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}
