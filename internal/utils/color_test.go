package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHexColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "upper case", input: "#FF0000", expected: "#FF0000"},
		{name: "lower case", input: "#ffeb3b", expected: "#FFEB3B"},
		{name: "without hash", input: "00ff00", expected: "#00FF00"},
		{name: "short form", input: "#fe3", expected: "#FFEE33"},
		{name: "android argb", input: "#FF112233", expected: "#112233"},
		{name: "surrounding whitespace", input: "  #0000ff ", expected: "#0000FF"},
		{name: "empty", input: "", wantErr: true},
		{name: "only hash", input: "#", wantErr: true},
		{name: "not hex", input: "#GGGGGG", wantErr: true},
		{name: "wrong length", input: "#12345", wantErr: true},
		{name: "named colour", input: "yellow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHexColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b, err := HexToRGB("#FFEB3B")
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 235, 59}, []uint8{r, g, b})

	_, _, _, err = HexToRGB("nope")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestIsLightColor(t *testing.T) {
	assert.True(t, IsLightColor("#FFFFFF"))
	assert.True(t, IsLightColor("#FFEB3B"))
	assert.False(t, IsLightColor("#000000"))
	assert.False(t, IsLightColor("#0000FF"))
	assert.False(t, IsLightColor("invalid"))
}
