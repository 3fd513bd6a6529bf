package visualization

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/palette"
)

func TestLinearColorScale_Hex(t *testing.T) {
	scale, err := NewLinearColorScale([]string{"green", "yellow", "red"}, 100, 200)
	require.NoError(t, err)

	tests := []struct {
		value float64
		want  string
	}{
		{100, "#008000"},
		{150, "#ffff00"},
		{200, "#ff0000"},
		{125, "#7fc000"},
		{175, "#ff7f00"},
	}

	for _, tt := range tests {
		got, err := scale.Hex(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}
}

func TestLinearColorScale_OutOfRange(t *testing.T) {
	scale, err := NewLinearColorScale([]string{"blue", "purple", "pink"}, 150, 250)
	require.NoError(t, err)

	_, err = scale.At(149)
	assert.ErrorIs(t, err, palette.ErrUnderflow)
	_, err = scale.At(251)
	assert.ErrorIs(t, err, palette.ErrOverflow)
}

func TestLinearColorScale_ColorMap(t *testing.T) {
	scale, err := NewLinearColorScale([]string{"#000000", "#ffffff"}, 0, 1)
	require.NoError(t, err)

	scale.SetAlpha(0.5)
	c, err := scale.At(1)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 128}, c)

	scale.SetMin(-1)
	scale.SetMax(3)
	assert.Equal(t, -1.0, scale.Min())
	assert.Equal(t, 3.0, scale.Max())

	colors := scale.Palette(5).Colors()
	require.Len(t, colors, 5)
	assert.Equal(t, color.NRGBA{A: 128}, colors[0])
}

func TestNewLinearColorScale_Invalid(t *testing.T) {
	_, err := NewLinearColorScale([]string{"green"}, 0, 1)
	assert.Error(t, err)

	_, err = NewLinearColorScale([]string{"green", "red"}, 5, 5)
	assert.Error(t, err)

	_, err = NewLinearColorScale([]string{"green", "chartreuse"}, 0, 1)
	assert.Error(t, err)
}

func TestNamedColorHex(t *testing.T) {
	assert.Equal(t, "#ffa500", NamedColorHex("orange"))
	assert.Equal(t, "#808080", NamedColorHex("gray"))
	assert.Equal(t, "#123456", NamedColorHex("#123456"))
}
