package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphmig/internal/schema"
)

func TestFromHex(t *testing.T) {
	rgb, err := FromHex("#1e90ff")
	require.NoError(t, err)
	assert.Equal(t, schema.RGB{Red: 30, Green: 144, Blue: 255}, rgb)

	rgb, err = FromHex("00ff00")
	require.NoError(t, err)
	assert.Equal(t, schema.RGB{Green: 255}, rgb)

	// Channels that do not survive a float round trip when truncated.
	rgb, err = FromHex("#21254a")
	require.NoError(t, err)
	assert.Equal(t, schema.RGB{Red: 33, Green: 37, Blue: 74}, rgb)

	_, err = FromHex("#abc")
	assert.Error(t, err)
	_, err = FromHex("#zzzzzz")
	assert.Error(t, err)
}

func TestFromWheel(t *testing.T) {
	tests := []struct {
		ref  string
		want schema.RGB
	}{
		// Gray: no saturation, half value.
		{"51/a", schema.RGB{Red: 127, Green: 127, Blue: 127}},
		// Pure cyan at hue 0.5.
		{"32/a", schema.RGB{Red: 0, Green: 255, Blue: 255}},
		// "b" on a green hue darkens.
		{"32/b", schema.RGB{Red: 0, Green: 204, Blue: 204}},
		{"12/a", schema.RGB{Red: 204, Green: 0, Blue: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := FromWheel(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromWheel_Invalid(t *testing.T) {
	_, err := FromWheel("99/a")
	assert.Error(t, err)

	_, err = FromWheel("11")
	assert.Error(t, err)
}

func TestNearest_ExactMatch(t *testing.T) {
	for _, c := range schema.Colors() {
		t.Run(c.Name(), func(t *testing.T) {
			assert.Equal(t, c, Nearest(c.RGB()))
		})
	}
}

func TestNearest_TieGoesToFirstMember(t *testing.T) {
	// Equidistant from DARK_GREEN and DARK_CYAN, closer than to any other
	// member. DARK_GREEN is enumerated first.
	point := schema.RGB{Red: 0, Green: 87, Blue: 99}
	require.Equal(t,
		squaredDistance(point, schema.ColorDarkGreen.RGB()),
		squaredDistance(point, schema.ColorDarkCyan.RGB()))

	assert.Equal(t, schema.ColorDarkGreen, Nearest(point))
}

func TestParse(t *testing.T) {
	c, err := Parse("#ff2929")
	require.NoError(t, err)
	assert.Equal(t, schema.ColorRed, c)

	_, err = Parse("nope")
	assert.Error(t, err)
}
