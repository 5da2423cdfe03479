package utils

import "math"

// RoundWithTwoDecimalPlace arredonda o score para duas casas decimais
func RoundWithTwoDecimalPlace(f float64) float64 {
	return math.Round(f*100) / 100
}
