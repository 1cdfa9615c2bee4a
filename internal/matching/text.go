package matching

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/spigell/job-matcher/internal/utils"
)

var (
	nonPhrase = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	wordToken  = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
	skillToken = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// titleSimilarity is the difflib ratio 2*M/T over the runes of both case-folded titles.
func titleSimilarity(a, b string) float64 {
	a, b = utils.Fold(a), utils.Fold(b)
	if a == b {
		return 1
	}
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// containsFolded reports whether needle occurs in haystack ignoring case.
func containsFolded(haystack, needle string) bool {
	return strings.Contains(utils.Fold(haystack), utils.Fold(needle))
}

// normalizePhrase lowercases s and replaces everything that is not a letter, digit,
// '+' or '#' with single spaces, so multi-word skills can be matched as phrases.
func normalizePhrase(s string) string {
	s = nonPhrase.ReplaceAllString(utils.Fold(s), " ")
	return strings.Join(strings.Fields(s), " ")
}

// containsPhrase checks for a normalized phrase as whole words.
func containsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}

// words splits text into folded word tokens of two or more characters.
func words(text string) []string {
	return wordToken.FindAllString(utils.Fold(text), -1)
}

// skillWords tokenizes a skill list. One-letter skills such as C or R are kept.
func skillWords(skills []string) []string {
	return skillToken.FindAllString(utils.Fold(strings.Join(skills, " ")), -1)
}
