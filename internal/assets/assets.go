package assets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Color name mapping for the color selector and config files
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// ColorNames lists the named colors, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(colorByName))
	for n := range colorByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts a color name or #rrggbb / #rrggbbaa.
func ParseColor(s string) (rl.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colorByName[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return rl.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// FormatColor is the inverse of ParseColor for unnamed colors.
func FormatColor(c rl.Color) string {
	for n, named := range colorByName {
		if named == c {
			return n
		}
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
