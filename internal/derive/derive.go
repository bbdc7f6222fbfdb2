// Package derive computes login credentials from the elder's identity data.
//
// The scheme is deterministic on purpose: the generated username and password
// are shown back to the caregiver at signup and must be reproducible from the
// profile alone. It is not a security mechanism.
package derive

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackUsername is returned when a name yields no usable tokens.
const FallbackUsername = "idoso"

// foldMarks decomposes accented runes and drops the combining marks, so
// "João" folds to "Joao".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Username maps a full name to its canonical login name: accent-folded,
// lowercased, first and last name tokens joined by a dot. Middle names are
// dropped. Deriving twice from the same name yields the same result.
func Username(fullName string) string {
	folded, _, err := transform.String(foldMarks, fullName)
	if err != nil {
		folded = fullName
	}
	tokens := strings.Fields(strings.ToLower(folded))
	switch len(tokens) {
	case 0:
		return FallbackUsername
	case 1:
		return tokens[0]
	}
	return tokens[0] + "." + tokens[len(tokens)-1]
}

// Password maps a birth date string to the derived password digits.
// "YYYY-MM-DD" and "DD/MM/YYYY" both normalize to "DDMMYYYY"; anything else
// (wrong digit count, no recognized separator) passes its digits through
// unchanged as a lenient fallback.
func Password(birthDate string) string {
	digits := strings.Map(keepDigit, birthDate)
	if len(digits) != 8 {
		return digits
	}
	if strings.Contains(birthDate, "-") {
		// ISO order: re-emit YYYYMMDD as DDMMYYYY.
		return digits[6:8] + digits[4:6] + digits[:4]
	}
	// DD/MM/YYYY (or separator-less input) already carries its digits in
	// display order.
	return digits
}

// NormalizeUsername applies the comparison form used at login time.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizePassword strips everything but ASCII digits, mirroring Password's
// output alphabet.
func NormalizePassword(password string) string {
	return strings.Map(keepDigit, password)
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
