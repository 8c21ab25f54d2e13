package charts

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Palette []string

func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return DefaultTextColor
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

const (
	DefaultTextColor       = "#333333"
	DefaultLightTextColor  = "#F5F5F5"
	DefaultBackgroundColor = "#FFFFFF"
)

var (
	DefaultPalette Palette
	Category10     Palette
	Tableau10      Palette
)

var palettes map[string]Palette

func init() {
	DefaultPalette = splitColorString("FF6B6B4ECDC445B7D1FFA07A98D8C8F9ED69F08A5DB83B5E6A2C7000B8A9F8F3D43F72AF")
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")

	palettes = map[string]Palette{
		"default":    DefaultPalette,
		"category10": Category10,
		"tableau10":  Tableau10,
	}
}

// PaletteByName returns a copy of one of the builtin palettes.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return append(Palette(nil), p...), true
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// contrastColor picks a readable text color for the given background.
func contrastColor(background string) string {
	c, err := parseColor(background)
	if err != nil {
		return DefaultTextColor
	}
	if l, _, _ := c.Lab(); l < 0.5 {
		return DefaultLightTextColor
	}
	return DefaultTextColor
}

// parseColor accepts the hexadecimal and rgb()/rgba() notations produced by
// computed styles.
func parseColor(str string) (colorful.Color, error) {
	str = strings.TrimSpace(strings.ToLower(str))
	switch {
	case strings.HasPrefix(str, "#"):
		return colorful.Hex(str)
	case strings.HasPrefix(str, "rgb"):
		var (
			r, g, b int
			rest    = str[strings.IndexByte(str, '(')+1:]
		)
		rest = strings.NewReplacer(",", " ", ")", " ").Replace(rest)
		if _, err := fmt.Sscanf(rest, "%d %d %d", &r, &g, &b); err != nil {
			return colorful.Color{}, err
		}
		return colorful.Color{
			R: float64(r) / 255,
			G: float64(g) / 255,
			B: float64(b) / 255,
		}, nil
	default:
		return colorful.Color{}, fmt.Errorf("%s: unsupported color notation", str)
	}
}

func isTransparent(str string) bool {
	str = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(str)), " ", "")
	return str == "" || str == "transparent" || strings.HasPrefix(str, "rgba(0,0,0,0)")
}
