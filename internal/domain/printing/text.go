package printing

import "strings"

// Ellipsis marks a truncated value.
const Ellipsis = "..."

// Placeholder replaces missing values.
const Placeholder = "—"

// Truncate shortens text so that it fits maxWidth when set in font. Text
// that already fits, including text exactly maxWidth wide, is returned
// unchanged. Otherwise it keeps the longest rune prefix that, with trailing
// spaces trimmed and Ellipsis appended, still fits.
func Truncate(text string, font Font, maxWidth float64, m Measurer) string {
	if m.StringWidth(text, font) <= maxWidth {
		return text
	}
	runes := []rune(text)
	candidate := func(n int) string {
		return strings.TrimRight(string(runes[:n]), " ") + Ellipsis
	}
	// candidate width never shrinks as n grows, so search for the last fit
	lo, hi := 0, len(runes)-1
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if m.StringWidth(candidate(mid), font) <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return Ellipsis
	}
	return candidate(lo)
}

// WrapText breaks text into lines no wider than maxWidth, splitting on
// spaces. A single word wider than maxWidth gets a line of its own.
func WrapText(text string, font Font, maxWidth float64, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 4)
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if m.StringWidth(candidate, font) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// OrPlaceholder returns Placeholder for blank values.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return strings.TrimSpace(s)
}
