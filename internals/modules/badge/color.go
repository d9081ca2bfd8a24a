package badge

import "strings"

// named colors understood by shields.io style badges
var namedColors = map[string]string{
	"brightgreen":   "#4c1",
	"green":         "#97ca00",
	"yellowgreen":   "#a4a61d",
	"yellow":        "#dfb317",
	"orange":        "#fe7d37",
	"red":           "#e05d44",
	"blue":          "#007ec6",
	"grey":          "#555",
	"gray":          "#555",
	"lightgrey":     "#9f9f9f",
	"lightgray":     "#9f9f9f",
	"success":       "#4c1",
	"important":     "#fe7d37",
	"critical":      "#e05d44",
	"informational": "#007ec6",
	"inactive":      "#9f9f9f",
}

// NormalizeColor accepts "#hex", bare hex or a named color and returns a
// "#hex" string. Anything else yields fallback.
func NormalizeColor(c, fallback string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return fallback
	}
	if hex, ok := namedColors[c]; ok {
		return hex
	}
	c = strings.TrimPrefix(c, "#")
	if !isHex(c) {
		return fallback
	}
	return "#" + c
}

func isHex(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
