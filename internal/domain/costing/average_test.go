package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kazuo-app/kazuo-back/internal/domain/costing"
)

// TestWeightedAverage valida el promedio ponderado de costo de compra con
// vectores calculados a mano.
func TestWeightedAverage(t *testing.T) {
	cases := []struct {
		name        string
		currentQty  int64
		currentCost string
		inQty       int64
		inCost      string
		expected    string
	}{
		{"mitad y mitad", 10, "10", 10, "20", "15"},
		{"entrada dominante", 1, "100", 9, "10", "19"},
		{"sin stock previo", 0, "0", 5, "8", "8"},
		{"mismo costo", 30, "12.50", 70, "12.50", "12.50"},
		{"decimales", 3, "1.10", 1, "2.30", "1.40"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := costing.WeightedAverage(
				decimal.NewFromInt(tc.currentQty), decimal.RequireFromString(tc.currentCost),
				decimal.NewFromInt(tc.inQty), decimal.RequireFromString(tc.inCost),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"esperaba %s, obtuve %s", tc.expected, got)
		})
	}
}

// Sin cantidades positivas no hay base para promediar.
func TestWeightedAverage_SinCantidades(t *testing.T) {
	got := costing.WeightedAverage(decimal.Zero, decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(20))
	assert.True(t, got.IsZero())
}
