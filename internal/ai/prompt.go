package ai

import "fmt"

func BuildIngredientPrompt(text string) string {
	return fmt.Sprintf(`You are extracting food safety attributes from free-text ingredient lists.
Given the text, return a strict JSON object with keys: allergens (array of strings), dietaryCategories (array of strings), and extractedIngredients (array of strings).
The allowed allergen ids are: milk, eggs, fish, tree_nuts, wheat, shellfish, gluten_free, peanuts, soybeans, sesame.
The allowed dietary category ids are: vegan, vegetarian.
Normalize synonyms to these ids (e.g., 'tree nuts' -> 'tree_nuts').
Only output valid ids. If none, output empty arrays.
Text: %s`, text)
}

func BuildMenuExtractionPrompt() string {
	return `Extract menu items from this document (image or PDF). Return ONLY strict JSON with key 'items' as an array of objects: {name, description, price, ingredients}.
- name: string, concise item name.
- description: string, may be empty if none.
- price: number in dollars (no currency symbol, no ranges).
- ingredients: comma-separated string of ingredients if visible; else empty.
Do not include any additional commentary.`
}
