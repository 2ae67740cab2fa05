package costing

import "github.com/shopspring/decimal"

// WeightedAverage calcula el nuevo costo promedio ponderado tras una entrada
// de compra:
//
//	nuevo = ((stockActual * costoActual) + (cantEntrada * costoEntrada)) / (stockActual + cantEntrada)
//
// Devuelve cero si la suma de cantidades no es positiva.
func WeightedAverage(currentQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := currentQty.Add(inQty)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	value := currentQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return value.Div(total)
}
