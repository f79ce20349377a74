package dxf

import (
	"math"
	"strconv"
)

func atan2Deg(y, x float64) float64 {
	return math.Atan2(y, x) * 180 / math.Pi
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(trimNum(s), 64)
	if err != nil {
		return def
	}
	return v
}

func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(trimNum(s))
	if err != nil {
		return def
	}
	return v
}

// trimNum strips the leading spaces DXF writers sometimes pad numeric
// values with.
func trimNum(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}
