package colouring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColour_StablePointsAreBlack(t *testing.T) {
	for _, m := range Maps() {
		assert.Equal(t, RGB{}, m.Colour(0, 80), "%s must render the non-escape sentinel black", m)
	}
}

func TestColour_Idempotent(t *testing.T) {
	for _, m := range Maps() {
		for _, value := range []int{0, 1, 7, 40, 79} {
			first := m.Colour(value, 80)
			for range 3 {
				require.Equal(t, first, m.Colour(value, 80))
			}
		}
	}
}

func TestColour_BlueBrownTable(t *testing.T) {
	assert.Equal(t, RGB{25, 7, 26}, BlueBrown.Colour(1, 80))
	assert.Equal(t, RGB{255, 170, 0}, BlueBrown.Colour(12, 80))
	// Indexing wraps modulo the table size.
	assert.Equal(t, BlueBrown.Colour(1, 80), BlueBrown.Colour(17, 80))
	// An escape count that is a multiple of 16 uses the table, not the
	// sentinel black.
	assert.Equal(t, RGB{66, 30, 15}, BlueBrown.Colour(16, 80))
}

func TestColour_GreenTable(t *testing.T) {
	assert.Equal(t, RGB{G: 80}, Green.Colour(5, 80))
	assert.Equal(t, Green.Colour(5, 80), Green.Colour(21, 80))
	// Entry zero of the table doubles as the sentinel colour.
	assert.Equal(t, RGB{}, Green.Colour(16, 80))
}

func TestColour_DefaultHueRamp(t *testing.T) {
	// Halfway through the iteration range the hue lands on pure cyan.
	assert.Equal(t, RGB{0, 255, 255}, Default.Colour(40, 80))
	// The ramp depends on the ceiling, not just the value.
	assert.NotEqual(t, Default.Colour(40, 80), Default.Colour(40, 240))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ffaa00", RGB{255, 170, 0}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
}

func TestParse(t *testing.T) {
	for _, m := range Maps() {
		got, err := Parse(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := Parse("sepia")
	assert.Error(t, err)
}

func TestNext_Cycles(t *testing.T) {
	assert.Equal(t, BlueBrown, Default.Next())
	assert.Equal(t, Green, BlueBrown.Next())
	assert.Equal(t, Default, Green.Next())
}
