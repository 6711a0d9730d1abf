package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want NumericText
	}{
		{name: "number", in: `40`, want: "40"},
		{name: "decimal number", in: `12.5`, want: "12.5"},
		{name: "numeric string", in: `"35"`, want: "35"},
		{name: "free text", in: `"abc"`, want: "abc"},
		{name: "empty string", in: `""`, want: ""},
		{name: "null", in: `null`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got NumericText
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericText_UnmarshalJSONRejectsObjects(t *testing.T) {
	var got NumericText
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestEmployee_CommissionPercentCoercion(t *testing.T) {
	tests := []struct {
		commission NumericText
		want       float64
	}{
		{"40", 40},
		{" 25 ", 25},
		{"12.5", 12.5},
		{"", 0},
		{"abc", 0},
		{"40%", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		e := Employee{Commission: tt.commission}
		assert.Equal(t, tt.want, e.CommissionPercent(), "commission %q", tt.commission)
	}
}

func TestEmployeeJSONAcceptsNumericCommission(t *testing.T) {
	var e Employee
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Diana","commission":40}`), &e))
	assert.Equal(t, 40.0, e.CommissionPercent())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentYape.Valid())
	assert.False(t, PaymentMethod("BITCOIN").Valid())
	assert.True(t, IsExpenseCategory("Luz"))
	assert.False(t, IsExpenseCategory("Viajes"))
}
