package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

func TestExtractTax_LabeledWithPercentage(t *testing.T) {
	// The rate annotation must not be captured as the amount.
	r := parseText("CORNER SHOP\nCGST @2.5% 14.25\nTOTAL 500.00")

	require.NotNil(t, r.Tax)
	assert.Equal(t, 14.25, *r.Tax)
	assert.Equal(t, constants.ConfidenceHigh, r.Confidence[entity.FieldTax].Level)
}

func TestExtractTax_Priority(t *testing.T) {
	r := parseText("CORNER SHOP\nSGST 7.10\nTOTAL TAX 14.20\nTOTAL 500.00")

	require.NotNil(t, r.Tax)
	assert.Equal(t, 14.20, *r.Tax)
}

func TestExtractTax_RateOnlyLineIgnored(t *testing.T) {
	r := parseText("CORNER SHOP\nGST 18%\nTOTAL 500.00")

	assert.Nil(t, r.Tax)
	_, present := r.Confidence[entity.FieldTax]
	assert.False(t, present, "missing tax must not add a confidence entry")
}

func TestExtractTax_NoNumericFallback(t *testing.T) {
	r := parseText("CORNER SHOP\nsome line 55.00\nTOTAL 500.00")
	assert.Nil(t, r.Tax)
}

func TestExtractSubtotal(t *testing.T) {
	r := parseText("CORNER SHOP\nSUB-TOTAL 470.00\nTOTAL 500.00")
	require.NotNil(t, r.Subtotal)
	assert.Equal(t, 470.00, *r.Subtotal)

	r = parseText("CORNER SHOP\nTaxable Amount 470.00\nTOTAL 500.00")
	require.NotNil(t, r.Subtotal)
	assert.Equal(t, 470.00, *r.Subtotal)
}

func TestExtractSubtotal_NoConfidenceEntry(t *testing.T) {
	r := parseText("CORNER SHOP\nSUB TOTAL 470.00\nTOTAL 500.00")
	require.NotNil(t, r.Subtotal)
	_, present := r.Confidence["subtotal"]
	assert.False(t, present)
}

func TestExtractPaymentMethod(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"paid via UPI ref 12345", "UPI"},
		{"PhonePe transaction", "UPI"},
		{"GPay received", "UPI"},
		{"VISA ****1234", "Credit Card"},
		{"MASTERCARD ending 4321", "Credit Card"},
		{"RuPay card", "Debit Card"},
		{"DEBIT CARD payment", "Debit Card"},
		{"NET BANKING transfer", "Net Banking"},
		{"paid by NEFT", "Bank Transfer"},
		{"CASH TENDERED 100.00", "Cash"},
	}
	for _, tt := range tests {
		r := parseText("CORNER SHOP\n" + tt.text)
		require.NotNil(t, r.PaymentMethod, tt.text)
		assert.Equal(t, tt.want, *r.PaymentMethod, tt.text)
	}
}

func TestExtractPaymentMethod_NoneFound(t *testing.T) {
	r := parseText("CORNER SHOP\nTOTAL 10.00")
	assert.Nil(t, r.PaymentMethod)
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"TOTAL ₹ 100.00", "INR"},
		{"TOTAL € 100.00", "EUR"},
		{"TOTAL £ 100.00", "GBP"},
		{"TOTAL ¥ 100.00", "JPY"},
		{"TOTAL $ 100.00", "USD"},
		{"TOTAL $ 100.00 RS 100", "INR"},
		{"TOTAL RS. 100.00", "INR"},
		{"TOTAL INR 100.00", "INR"},
		{"CGST 2.50 SGST 2.50", "INR"},
		{"GSTIN 27AAAAA0000A1Z5", "INR"},
		{"TOTAL 100.00", "USD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectCurrency(tt.text), tt.text)
	}
}
