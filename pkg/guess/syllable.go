package guess

import "strings"

// syllable holds the components of a syllable spec or pattern token.
// toned is false when the tone separator is absent, in which case
// final carries whatever was left and tone is empty.
type syllable struct {
	initial  string
	final    string
	tone     string
	compound bool
	toned    bool
}

// splitSyllable cuts on the first initial separator, then on the first tone separator.
func splitSyllable(s string) syllable {
	var sy syllable
	rest := s
	if initial, after, ok := strings.Cut(s, InitialSep); ok {
		sy.initial = initial
		sy.compound = true
		rest = after
	}
	sy.final, sy.tone, sy.toned = strings.Cut(rest, ToneSep)
	return sy
}

// IsFullWildcard reports whether token matches every syllable unconditionally.
func IsFullWildcard(token string) bool {
	return token == FullWildcard || token == FullWildcardCompound
}

// MatchSyllable reports whether a single pattern token accepts the target syllable spec.
//
// A token with an initial only matches targets with an initial and the other way round,
// unless the token is a full wildcard. Initial, final and tone are compared
// independently, each either the wildcard X or an exact string.
// Specs missing their tone separator never match except byte for byte,
// so MatchSyllable("X", "ai") is false even though both lack a tone.
func MatchSyllable(token, target string) bool {
	if token == target {
		return true
	}
	if IsFullWildcard(token) {
		return true
	}

	p, t := splitSyllable(token), splitSyllable(target)
	if p.compound != t.compound {
		return false
	}
	if !p.toned || !t.toned {
		return false
	}
	if p.compound && !matchComponent(p.initial, t.initial) {
		return false
	}
	return matchComponent(p.final, t.final) && matchComponent(p.tone, t.tone)
}

func matchComponent(pattern, target string) bool {
	return pattern == Wildcard || pattern == target
}
