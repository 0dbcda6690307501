package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 minutes", FormatDuration(0.5))
	assert.Equal(t, "10 hours", FormatDuration(10))
	assert.Equal(t, "2 hours 30 minutes", FormatDuration(2.5))
	assert.Equal(t, "1 days 4 hours", FormatDuration(28))
}

func TestChunkCoordinatesKeepsEndpoints(t *testing.T) {
	p := path(250)

	out := ChunkCoordinates(p, 100)
	assert.Equal(t, p[0], out[0])
	assert.Equal(t, p[len(p)-1], out[len(out)-1])
	assert.LessOrEqual(t, len(out), 126)

	assert.Equal(t, p[:3], ChunkCoordinates(p[:3], 100))
}

func TestCoordinatesValidAndRound(t *testing.T) {
	assert.True(t, Coordinates{Lon: -74.006, Lat: 40.7128}.Valid())
	assert.False(t, Coordinates{Lon: 181, Lat: 0}.Valid())
	assert.False(t, Coordinates{Lon: 0, Lat: -91}.Valid())

	c := Coordinates{Lon: -74.00601234, Lat: 40.71289999}.Round(6)
	assert.Equal(t, Coordinates{Lon: -74.006012, Lat: 40.7129}, c)
}
