package ingest

import "strings"

// Keyword tables for guessing a category or unit from an item name when
// the spreadsheet carries neither and the item is not yet in stock.
// First match wins; iteration order is fixed by the slice.

type keywordRule struct {
	value    string
	keywords []string
}

var categoryRules = []keywordRule{
	{"Beverages", []string{"juice", "water", "soda", "cola", "coffee", "tea", "drink", "lassi", "buttermilk", "milkshake"}},
	{"Bread", []string{"bread", "bun", "toast", "roti", "naan", "paratha", "chapati", "baguette", "croissant", "loaf", "pav"}},
	{"Dairy", []string{"milk", "curd", "paneer", "ghee", "butter", "cream", "cheese", "yogurt", "dahi"}},
	{"Desserts", []string{"cake", "pastry", "sweet", "chocolate", "ice cream", "pudding", "halwa", "ladoo", "kheer", "cookie", "biscuit"}},
	{"Frozen Foods", []string{"frozen", "fries", "nuggets", "patty", "samosa"}},
	{"Fruits", []string{"apple", "banana", "orange", "mango", "grape", "papaya", "watermelon", "lemon", "lime", "pineapple", "coconut"}},
	{"Grocery", []string{"rice", "wheat", "flour", "atta", "maida", "besan", "dal", "lentil", "chana", "poha", "oats", "salt", "sugar", "jaggery", "honey", "oil", "spice", "masala", "pickle", "noodles", "pasta"}},
	{"Sauce", []string{"sauce", "ketchup", "mayonnaise", "mustard", "chutney", "dressing", "salsa", "gravy"}},
	{"Vegetable", []string{"onion", "tomato", "potato", "carrot", "capsicum", "cabbage", "cauliflower", "beans", "peas", "brinjal", "okra", "spinach", "palak", "coriander", "ginger", "garlic", "chilli", "beetroot", "radish", "cucumber", "pumpkin", "mint", "lettuce", "mushroom"}},
}

var unitRules = []keywordRule{
	{"BTL", []string{"bottle", "btl", "soda", "cola", "juice bottle"}},
	{"LTR", []string{"milk", "oil", "ghee", "curd", "buttermilk", "juice", "water", "cream", "lassi", "liter", "litre"}},
	{"NOS", []string{"coconut", "egg", "lemon", "lime", "papaya", "watermelon", "pumpkin", "cabbage", "cauliflower"}},
	{"PCS", []string{"bread", "bun", "roll", "samosa", "patty", "nugget", "cake", "pastry", "cookie", "piece", "slice"}},
	{"PKT", []string{"chips", "biscuit", "noodles", "pasta", "packet", "pack", "frozen", "masala", "spice"}},
	{"TIN", []string{"tin", "can", "canned", "condensed"}},
}

// DefaultCategory and DefaultUnit are used when no rule matches.
const (
	DefaultCategory = "Grocery"
	DefaultUnit     = "KG"
)

// ValidUnits are the units accepted verbatim from a spreadsheet column.
var ValidUnits = []string{"BTL", "KG", "LTR", "NOS", "PCS", "PKT", "TIN"}

func matchRules(name string, rules []keywordRule) (string, bool) {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.value, true
			}
		}
	}
	return "", false
}

// DetectCategory guesses a category from the item name.
func DetectCategory(name string) string {
	if c, ok := matchRules(name, categoryRules); ok {
		return c
	}
	return DefaultCategory
}

// DetectUnit guesses a measurement unit from the item name.
func DetectUnit(name string) string {
	if u, ok := matchRules(name, unitRules); ok {
		return u
	}
	return DefaultUnit
}

// NormalizeUnit maps a sheet-provided unit to its canonical form, or ""
// when the value is not a recognized unit.
func NormalizeUnit(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, u := range ValidUnits {
		if strings.EqualFold(trimmed, u) {
			return u
		}
	}
	return ""
}
