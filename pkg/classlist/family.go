package classlist

import "strings"

// compoundPrefixes are utilities whose family includes an axis or side.
var compoundPrefixes = []string{
	"space-x", "space-y", "overflow-x", "overflow-y", "gap-x", "gap-y",
	"rounded-t", "rounded-b", "rounded-l", "rounded-r",
	"border-t", "border-b", "border-l", "border-r", "border-x", "border-y",
}

var textSizes = map[string]bool{
	"xs": true, "sm": true, "base": true, "lg": true, "xl": true,
	"2xl": true, "3xl": true, "4xl": true, "5xl": true, "6xl": true,
	"7xl": true, "8xl": true, "9xl": true,
}

var textAlign = map[string]bool{
	"left": true, "center": true, "right": true, "justify": true, "start": true, "end": true,
}

var fontWeights = map[string]bool{
	"thin": true, "extralight": true, "light": true, "normal": true, "medium": true,
	"semibold": true, "bold": true, "extrabold": true, "black": true,
}

// Family returns the utility family of a token, keeping any variant prefix:
// md:text-4xl is in family "md:text-size", border-gray-700 in "border-color".
func Family(token string) string {
	variant := ""
	if i := strings.LastIndex(token, ":"); i >= 0 {
		variant, token = token[:i+1], token[i+1:]
	}
	token = strings.TrimPrefix(token, "-")
	if i := strings.Index(token, "/"); i >= 0 {
		token = token[:i]
	}

	for _, p := range compoundPrefixes {
		if token == p || strings.HasPrefix(token, p+"-") {
			return variant + p
		}
	}

	head, rest, _ := strings.Cut(token, "-")
	switch head {
	case "text":
		switch {
		case textSizes[rest]:
			return variant + "text-size"
		case textAlign[rest]:
			return variant + "text-align"
		}
		return variant + "text-color"
	case "font":
		if fontWeights[rest] {
			return variant + "font-weight"
		}
		return variant + "font-family"
	case "border":
		if rest == "" || (rest[0] >= '0' && rest[0] <= '9') {
			return variant + "border-width"
		}
		return variant + "border-color"
	case "p", "px", "py", "pt", "pb", "pl", "pr":
		return variant + "padding"
	}
	return variant + head
}
