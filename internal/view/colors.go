package view

import "strings"

// cssColors maps the CSS named colors people commonly put in card configs
// to hex, since terminals only understand hex and ANSI codes.
var cssColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"gray":        "#808080",
	"grey":        "#808080",
	"dimgray":     "#696969",
	"silver":      "#c0c0c0",
	"red":         "#ff0000",
	"darkred":     "#8b0000",
	"crimson":     "#dc143c",
	"tomato":      "#ff6347",
	"orange":      "#ffa500",
	"darkorange":  "#ff8c00",
	"gold":        "#ffd700",
	"yellow":      "#ffff00",
	"green":       "#008000",
	"lime":        "#00ff00",
	"limegreen":   "#32cd32",
	"darkgreen":   "#006400",
	"teal":        "#008080",
	"cyan":        "#00ffff",
	"aqua":        "#00ffff",
	"blue":        "#0000ff",
	"navy":        "#000080",
	"dodgerblue":  "#1e90ff",
	"skyblue":     "#87ceeb",
	"purple":      "#800080",
	"violet":      "#ee82ee",
	"magenta":     "#ff00ff",
	"fuchsia":     "#ff00ff",
	"pink":        "#ffc0cb",
	"brown":       "#a52a2a",
	"transparent": "",
}

// TermColor converts a CSS color into a value lipgloss.Color understands:
// named colors become hex, #rgb expands to #rrggbb, and anything else is
// returned unchanged.
func TermColor(css string) string {
	c := strings.ToLower(strings.TrimSpace(css))
	if hex, ok := cssColors[c]; ok {
		return hex
	}
	if len(c) == 4 && c[0] == '#' {
		return "#" + strings.Repeat(c[1:2], 2) + strings.Repeat(c[2:3], 2) + strings.Repeat(c[3:4], 2)
	}
	return c
}
