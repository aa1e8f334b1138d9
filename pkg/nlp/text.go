package nlp

import "strings"

// Tokens returns the unique tokens of an already-normalized string.
func Tokens(normalized string) map[string]struct{} {
	out := make(map[string]struct{})
	if normalized == "" {
		return out
	}
	for _, t := range strings.Split(normalized, " ") {
		if t == "" {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// TokensList splits a normalized string into tokens, keeping order and repeats.
func TokensList(normalized string) []string {
	if normalized == "" {
		return []string{}
	}
	return strings.Split(normalized, " ")
}

// ContainsPhrase reports whether a normalized phrase occurs as whole words.
// Example: "rest api" is found in " ... rest api ..." but not in " ... rest apis ...".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}
