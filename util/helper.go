package util

import (
	"math"
	"strings"
)

func Ptr[T any](v T) *T {
	return &v
}

// standardize the provided room names, so "Lobby " and "lobby" are the same room
func NormalizeRoomName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)

	return name
}

// round a value to the given number of decimals
func Round(value float64, decimals int) float64 {
	shift := math.Pow10(decimals)
	return math.Round(value*shift) / shift
}
