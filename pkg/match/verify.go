package match

// HasPrefix reports whether address starts with pattern, where wildcard
// characters in pattern match any single character. With fold set, ASCII
// letters compare case-insensitively.
func HasPrefix(address, pattern string, fold bool) bool {
	if len(address) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		p := pattern[i]
		if p == WildcardDot || p == WildcardStar {
			continue
		}
		a := address[i]
		if fold {
			a, p = toLower(a), toLower(p)
		}
		if a != p {
			return false
		}
	}
	return true
}

// IsWildcardOnly reports whether every character of pattern is a wildcard.
func IsWildcardOnly(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != WildcardDot && pattern[i] != WildcardStar {
			return false
		}
	}
	return true
}
