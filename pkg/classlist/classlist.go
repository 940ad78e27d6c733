// Package classlist treats utility-class attribute values as token sets.
package classlist

import (
	"strings"
)

// Split returns the whitespace-separated tokens of a class value.
func Split(value string) []string {
	return strings.Fields(value)
}

func set(value string) map[string]bool {
	tokens := Split(value)
	s := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		s[t] = true
	}
	return s
}

// Missing returns the required tokens absent from actual, in required order.
func Missing(actual, required string) []string {
	have := set(actual)
	var missing []string
	for _, t := range Split(required) {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

// HasAll reports whether actual contains every required token. Order and
// extra tokens do not matter.
func HasAll(actual, required string) bool {
	return len(Missing(actual, required)) == 0
}

// HasAny reports whether actual satisfies at least one of the alternatives.
func HasAny(actual string, alternatives []string) bool {
	for _, alt := range alternatives {
		if HasAll(actual, alt) {
			return true
		}
	}
	return false
}

// Conflicting returns the tokens of actual that are not required but belong
// to the same utility family as a required token, e.g. text-2xl when
// text-3xl is required.
func Conflicting(actual, required string) []string {
	want := set(required)
	families := make(map[string]bool, len(want))
	for t := range want {
		families[Family(t)] = true
	}
	var out []string
	for _, t := range Split(actual) {
		if !want[t] && families[Family(t)] {
			out = append(out, t)
		}
	}
	return out
}

// Merge removes the tokens in remove from actual and appends the tokens of
// add that are not already present. Unrelated tokens keep their order.
func Merge(actual, remove, add string) string {
	drop := set(remove)
	var out []string
	have := make(map[string]bool)
	for _, t := range Split(actual) {
		if drop[t] || have[t] {
			continue
		}
		have[t] = true
		out = append(out, t)
	}
	for _, t := range Split(add) {
		if !have[t] {
			have[t] = true
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}
