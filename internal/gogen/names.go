package gogen

import "strings"

// snakeToCamel converts a snake_case Rust field name to the exported Go
// form: "process_startup_time_us" -> "ProcessStartupTimeUs".
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = upperFirst(p)
	}
	return strings.Join(parts, "")
}

// lowerFirst lowercases the first rune: "ApiServerMetrics" -> "apiServerMetrics".
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// upperFirst uppercases the first rune.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// jsonTag renders the struct tag carrying the original snake_case name.
func jsonTag(name string) string {
	return "`json:\"" + name + "\"`"
}
