package ui

import "strings"

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of a long value (URLs, paths).
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// titleCase converts a hyphen- or underscore-separated slug to Title Case.
func titleCase(value string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(value), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, f := range fields {
		lower := strings.ToLower(f)
		fields[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(fields, " ")
}

// statLabel returns the short display label for a base stat name.
func statLabel(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hp":
		return "HP"
	case "special-attack":
		return "Sp. Atk"
	case "special-defense":
		return "Sp. Def"
	default:
		return titleCase(name)
	}
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// barWidth scales value against ceiling into at most width cells. Any
// positive value gets at least one cell.
func barWidth(value, ceiling, width int) int {
	if value <= 0 || ceiling <= 0 || width <= 0 {
		return 0
	}
	if value >= ceiling {
		return width
	}
	w := value * width / ceiling
	if w == 0 {
		w = 1
	}
	return w
}
