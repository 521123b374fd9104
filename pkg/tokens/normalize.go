// Package tokens turns station names into comparable token sets.
//
// A token is a case-folded, punctuation-free word fragment. Numeric ordinals
// are spelled out ("21st" becomes "twentyfirst") so that a stop written as
// "21st St" and a station catalogued as "Twentyfirst Street" share a token.
// The two-digit forms are deliberately compacted with no separator.
package tokens

import (
	"strconv"
	"strings"
)

var ordinalOnes = [...]string{
	"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth",
}

var ordinalTeens = [...]string{
	"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth",
	"fifteenth", "sixteenth", "seventeenth", "eighteenth", "nineteenth",
}

var ordinalTens = map[int]string{
	20: "twentieth",
	30: "thirtieth",
	40: "fortieth",
	50: "fiftieth",
	60: "sixtieth",
	70: "seventieth",
	80: "eightieth",
	90: "ninetieth",
}

var cardinalTens = map[int]string{
	20: "twenty",
	30: "thirty",
	40: "forty",
	50: "fifty",
	60: "sixty",
	70: "seventy",
	80: "eighty",
	90: "ninety",
}

var ordinalSuffixes = [...]string{"st", "nd", "rd", "th"}

// OrdinalWord spells n as an English ordinal. It reports false for n <= 0
// and n >= 100.
func OrdinalWord(n int) (string, bool) {
	switch {
	case n <= 0:
		return "", false
	case n < 10:
		return ordinalOnes[n], true
	case n < 20:
		return ordinalTeens[n-10], true
	}
	if word, ok := ordinalTens[n]; ok {
		return word, true
	}

	tens, ones := n/10, n%10
	base, ok := cardinalTens[tens*10]
	if !ok || ones < 1 || ones > 9 {
		return "", false
	}
	return base + ordinalOnes[ones], true
}

// Normalize canonicalizes a single name fragment: it lower-cases, drops one
// trailing period and spells out numeric ordinals such as "3rd" or "42nd".
// Ordinals that cannot be spelled ("101st", "0th") pass through lower-cased.
func Normalize(token string) string {
	token = strings.ToLower(token)
	token = strings.TrimSuffix(token, ".")

	if len(token) <= 2 {
		return token
	}

	digits, suffix := token[:len(token)-2], token[len(token)-2:]
	if !isOrdinalSuffix(suffix) || !isASCIIDigits(digits) {
		return token
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return token
	}
	if word, ok := OrdinalWord(n); ok {
		return word
	}
	return token
}

func isOrdinalSuffix(s string) bool {
	for _, suffix := range ordinalSuffixes {
		if s == suffix {
			return true
		}
	}
	return false
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
