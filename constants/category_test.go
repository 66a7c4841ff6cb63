package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"STAR BAZAAR\nthanks for shopping", Groceries},
		{"Cafe Coffee Day", FoodAndDining},
		{"UBER trip receipt", Transportation},
		{"Apollo Pharmacy bill", Healthcare},
		{"PVR Cinemas ticket", Entertainment},
		{"Airtel broadband invoice", Utilities},
		{"Myntra order", Shopping},
		{"completely unrelated text", Uncategorized},
		{"", Uncategorized},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Suggest(tt.text), tt.text)
	}
}

func TestSuggest_OrderPrefersGroceries(t *testing.T) {
	// A supermarket that also sells apparel stays in Groceries because the
	// grocery bucket is checked first.
	assert.Equal(t, Groceries, Suggest("hypermarket apparel electronics"))
}

func TestAsStringSlice(t *testing.T) {
	all := AsStringSlice()
	assert.Len(t, all, 8)
	assert.Contains(t, all, "Food & Dining")
	assert.Contains(t, all, "Uncategorized")
}
