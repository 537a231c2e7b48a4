package ai

import (
	"strings"

	"github.com/reece333/SafeEats-TeamM/internal/menu"
)

// allergenSynonyms maps common free-text spellings onto canonical ids.
// "gluten" approximates to wheat, matching common menu usage.
var allergenSynonyms = map[string]string{
	"tree nuts": "tree_nuts",
	"treenuts":  "tree_nuts",
	"gluten":    "wheat",
}

func normalizeID(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if mapped, ok := allergenSynonyms[v]; ok {
		v = mapped
	}
	return strings.ReplaceAll(v, " ", "_")
}

// NormalizeAllergens maps model output onto the canonical allergen
// vocabulary, silently dropping anything it cannot place.
func NormalizeAllergens(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if id := normalizeID(v); menu.ValidAllergens[id] {
			out = append(out, id)
		}
	}
	return out
}

// NormalizeDietaryCategories does the same against the dietary vocabulary.
func NormalizeDietaryCategories(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if id := normalizeID(v); menu.ValidDietaryCategories[id] {
			out = append(out, id)
		}
	}
	return out
}
