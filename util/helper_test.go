package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoomName(t *testing.T) {
	assert.Equal(t, "lobby", NormalizeRoomName(" Lobby "))
	assert.Equal(t, "control room", NormalizeRoomName("Control Room"))
	assert.Equal(t, "", NormalizeRoomName("   "))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 12.35, Round(12.345678, 2))
	assert.Equal(t, -3.46, Round(-3.456, 2))
	assert.Equal(t, 240.1, Round(240.06, 1))
	assert.Equal(t, 7.0, Round(7, 2))
}

func TestPtr(t *testing.T) {
	value := Ptr(true)
	assert.Equal(t, true, *value)
}
