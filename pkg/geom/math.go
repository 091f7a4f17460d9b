package geom

import (
	"math"
	"strconv"
)

const degToRad = float32(math.Pi / 180)

func toRadians(deg float32) float32 {
	return deg * degToRad
}

func sincos(deg float32) (sin, cos float32) {
	s, c := math.Sincos(float64(toRadians(deg)))
	return float32(s), float32(c)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// formatFloat renders fixed notation with six decimals, the same output as
// printf's %f for both float and double inputs.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
