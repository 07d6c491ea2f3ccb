// Package recase converts map keys between snake_case and camelCase, deeply
// through nested maps and slices. It is an optional pre-processing step for
// callers whose wire casing differs from their schema's field names; the
// validation engine itself never recases anything.
package recase

import (
	"strings"
	"unicode"
)

// SnakeKeys returns a copy of v with every map key converted to snake_case.
func SnakeKeys(v any) any { return recase(v, ToSnake) }

// CamelKeys returns a copy of v with every map key converted to camelCase.
func CamelKeys(v any) any { return recase(v, ToCamel) }

func recase(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fn(k)] = recase(val, fn)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, val := range t {
			if s, ok := k.(string); ok {
				out[fn(s)] = recase(val, fn)
				continue
			}
			out[k] = recase(val, fn)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = recase(el, fn)
		}
		return out
	default:
		return v
	}
}

// ToSnake converts camelCase or PascalCase to snake_case. Acronym runs stay
// together: "userID" becomes "user_id".
func ToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && runes[i-1] != '_' && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts snake_case to camelCase.
func ToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	up := false
	for i, r := range s {
		if r == '_' {
			// leading/trailing underscores are preserved literally
			if i == 0 || i == len(s)-1 {
				b.WriteRune(r)
				continue
			}
			up = true
			continue
		}
		if up {
			b.WriteRune(unicode.ToUpper(r))
			up = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
