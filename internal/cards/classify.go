package cards

import "strings"

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t *Type) matchExact(number string) bool {
	if !t.exactPattern.MatchString(number) {
		return false
	}
	for _, p := range t.excludePrefixes {
		if strings.HasPrefix(number, p) {
			return false
		}
	}
	return true
}

// Classify determines the issuing network of a card number. Completed numbers
// are matched against every exact pattern in priority order; when none match,
// prefix patterns are tried in the same order so partial input still yields a
// hint while typing. Callers must strip whitespace beforehand; non-numeric
// input yields nil.
func Classify(number string) *Type {
	if !isDigits(number) {
		return nil
	}

	for _, network := range typeOrder {
		if t := types[network]; t.matchExact(number) {
			return t
		}
	}
	for _, network := range typeOrder {
		if t := types[network]; t.prefixPattern.MatchString(number) {
			return t
		}
	}
	return nil
}

// Luhn runs the mod-10 checksum over a card number.
func Luhn(number string) bool {
	if !isDigits(number) {
		return false
	}

	var sum int
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum != 0 && sum%10 == 0
}

// Validate is the authoritative pre-submission check: the number must pass
// the Luhn checksum and match a network's exact pattern. The prefix fallback
// used for typing hints is never accepted here.
func Validate(number string) *Type {
	if !Luhn(number) {
		return nil
	}
	for _, network := range typeOrder {
		if t := types[network]; t.matchExact(number) {
			return t
		}
	}
	return nil
}
