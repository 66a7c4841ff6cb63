package constants

import (
	"strings"
)

type Category string

const (
	Groceries      Category = "Groceries"
	FoodAndDining  Category = "Food & Dining"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Healthcare     Category = "Healthcare"
	Entertainment  Category = "Entertainment"
	Utilities      Category = "Utilities"
	Uncategorized  Category = "Uncategorized"
)

var allCategories = []Category{
	Groceries,
	FoodAndDining,
	Transportation,
	Shopping,
	Healthcare,
	Entertainment,
	Utilities,
	Uncategorized,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// categoryKeywords is checked in order; the first category with a keyword
// hit wins, so the more specific buckets come first.
var categoryKeywords = []struct {
	Category Category
	Keywords []string
}{
	{Groceries, []string{
		"bazaar", "supermarket", "hypermarket", "grocery", "groceries",
		"kirana", "dmart", "d-mart", "provision", "fresh mart", "vegetables",
	}},
	{FoodAndDining, []string{
		"restaurant", "cafe", "coffee", "bakery", "pizza", "burger",
		"biryani", "dhaba", "swiggy", "zomato", "dining", "kitchen", "eatery",
	}},
	{Transportation, []string{
		"uber", "ola", "taxi", "cab", "petrol", "diesel", "fuel",
		"parking", "toll", "metro", "railway", "irctc", "bus ticket",
	}},
	{Shopping, []string{
		"apparel", "clothing", "fashion", "footwear", "lifestyle",
		"electronics", "amazon", "flipkart", "myntra", "mall", "boutique",
	}},
	{Healthcare, []string{
		"pharmacy", "chemist", "medical", "medicine", "hospital",
		"clinic", "diagnostic", "apollo", "medplus", "wellness",
	}},
	{Entertainment, []string{
		"cinema", "movie", "pvr", "inox", "theatre", "bookmyshow",
		"gaming", "amusement", "netflix",
	}},
	{Utilities, []string{
		"electricity", "water bill", "broadband", "internet", "postpaid",
		"recharge", "dth", "gas bill", "utility",
	}},
}

// Suggest returns the first category whose keyword list has a substring hit
// in the given text. Falls back to Uncategorized.
func Suggest(text string) Category {
	haystack := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(haystack, kw) {
				return entry.Category
			}
		}
	}
	return Uncategorized
}
