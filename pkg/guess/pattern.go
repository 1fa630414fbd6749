package guess

import "strings"

// ParsePattern splits a query on commas and trims each token.
// It returns every token it finds; checking for exactly four is left to the caller.
func ParsePattern(pattern string) []string {
	tokens := strings.Split(pattern, TokenSep)
	for i, t := range tokens {
		tokens[i] = strings.TrimSpace(t)
	}
	return tokens
}

// ValidatePattern parses a query and rejects anything that is not four well-formed tokens.
// The returned error wraps ErrInvalidPattern.
func ValidatePattern(pattern string) ([]string, error) {
	tokens := ParsePattern(pattern)
	if len(tokens) != SyllableCount {
		return nil, &PatternError{
			Pattern: pattern,
			Index:   -1,
			Reason:  "expected 4 tokens",
		}
	}
	for i, token := range tokens {
		if reason := checkToken(token); reason != "" {
			return nil, &PatternError{
				Pattern: pattern,
				Index:   i,
				Token:   token,
				Reason:  reason,
			}
		}
	}
	return tokens, nil
}

// checkToken returns why a token is malformed, or "" if it is fine.
func checkToken(token string) string {
	if IsFullWildcard(token) {
		return ""
	}
	sy := splitSyllable(token)
	switch {
	case !sy.toned:
		return "missing tone separator"
	case sy.compound && sy.initial == "":
		return "empty initial"
	case sy.final == "":
		return "empty final"
	case sy.tone == "":
		return "empty tone"
	case strings.Contains(sy.final, InitialSep) || strings.Contains(sy.tone, InitialSep):
		return "misplaced initial separator"
	case strings.Contains(sy.tone, ToneSep):
		return "repeated tone separator"
	}
	return ""
}
