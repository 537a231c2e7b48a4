package menu

import (
	"sort"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
)

// Canonical wire-level vocabularies. One list each, shared by the menu
// validator and the AI normalizer.
var ValidAllergens = map[string]bool{
	"milk":        true,
	"eggs":        true,
	"fish":        true,
	"tree_nuts":   true,
	"wheat":       true,
	"shellfish":   true,
	"gluten_free": true,
	"peanuts":     true,
	"soybeans":    true,
	"sesame":      true,
}

var ValidDietaryCategories = map[string]bool{
	"vegan":      true,
	"vegetarian": true,
}

// ValidateAttributes rejects any value outside the vocabularies, reporting
// every offending value rather than the first.
func ValidateAttributes(allergens, dietaryCategories []string) error {
	if invalid := outsideVocabulary(allergens, ValidAllergens); len(invalid) > 0 {
		return &apperr.InvalidAttributeError{Field: "allergens", Values: invalid}
	}
	if invalid := outsideVocabulary(dietaryCategories, ValidDietaryCategories); len(invalid) > 0 {
		return &apperr.InvalidAttributeError{Field: "dietary categories", Values: invalid}
	}
	return nil
}

func outsideVocabulary(values []string, vocabulary map[string]bool) []string {
	seen := make(map[string]bool)
	var invalid []string
	for _, v := range values {
		if !vocabulary[v] && !seen[v] {
			seen[v] = true
			invalid = append(invalid, v)
		}
	}
	sort.Strings(invalid)
	return invalid
}
