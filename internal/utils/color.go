package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid hex color")

// NormalizeHexColor accepts "#RGB", "#RRGGBB" or Android-style "#AARRGGBB"
// (the leading '#' is optional) and returns upper-case "#RRGGBB".
// Alpha is dropped.
// Example: "#ff112233" -> "#112233"
func NormalizeHexColor(s string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !isHex(digits) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	switch len(digits) {
	case 3, 6:
	case 8:
		digits = digits[2:]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return strings.ToUpper(c.Hex()), nil
}

// HexToRGB returns the 8-bit channels of a colour accepted by NormalizeHexColor.
func HexToRGB(s string) (r, g, b uint8, err error) {
	normalized, err := NormalizeHexColor(s)
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := colorful.Hex(strings.ToLower(normalized))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// IsLightColor reports whether dark text reads better on top of the colour.
func IsLightColor(s string) bool {
	r, g, b, err := HexToRGB(s)
	if err != nil {
		return false
	}
	_, _, l := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hcl()
	return l > 0.6
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
