package standup

import (
	"fmt"
	"strings"
)

// Theme is the visual theme of a standup. The string value is the persisted tag.
type Theme string

const (
	Bubblegum  Theme = "bubblegum"
	Buttercup  Theme = "buttercup"
	Indigo     Theme = "sdindigo"
	Lavender   Theme = "lavender"
	Magenta    Theme = "sdmagenta"
	Navy       Theme = "navy"
	Orange     Theme = "sdorange"
	Oxblood    Theme = "oxblood"
	Periwinkle Theme = "periwinkle"
	Poppy      Theme = "poppy"
	Purple     Theme = "sdpurple"
	Seafoam    Theme = "seafoam"
	Sky        Theme = "sky"
	Tan        Theme = "tan"
	Teal       Theme = "sdteal"
	Yellow     Theme = "sdyellow"
)

var allThemes = []Theme{
	Bubblegum, Buttercup, Indigo, Lavender, Magenta, Navy, Orange, Oxblood,
	Periwinkle, Poppy, Purple, Seafoam, Sky, Tan, Teal, Yellow,
}

// Themes returns every theme in display order.
func Themes() []Theme {
	out := make([]Theme, len(allThemes))
	copy(out, allThemes)
	return out
}

// ParseTheme validates a persisted tag.
func ParseTheme(tag string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range allThemes {
		if known == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", tag)
}

// Name is the display name of the theme.
func (t Theme) Name() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// AccentIsLight reports whether text on the theme colour should be white.
func (t Theme) AccentIsLight() bool {
	switch t {
	case Indigo, Magenta, Navy, Oxblood, Purple:
		return true
	default:
		return false
	}
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, known := range allThemes {
		if known == t {
			return allThemes[(i+1)%len(allThemes)]
		}
	}
	return allThemes[0]
}
