package tokens

import (
	"sort"
	"strings"
	"unicode"
)

// separators are replaced by a space before a name is split into fragments.
var separators = strings.NewReplacer(
	"/", " ",
	"&", " ",
	"|", " ",
	"-", " ",
	"'", " ",
	"·", " ", // middle dot
	"‒", " ", // figure dash
	"–", " ", // en dash
	"—", " ", // em dash
	"−", " ", // minus sign
	"│", " ", // box drawings light vertical
)

// Set is an unordered collection of unique tokens.
type Set map[string]struct{}

// NewSet builds a set from already-normalized tokens.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Tokenize splits a full name into its token set. Combining marks are not
// letters, so a decomposed accent is dropped from its fragment. Names that
// produce no tokens yield an empty, non-nil set.
func Tokenize(name string) Set {
	name = separators.Replace(strings.ToLower(name))

	set := make(Set)
	for _, fragment := range strings.Fields(name) {
		clean := strings.Map(keepAlphanumeric, fragment)
		if clean == "" {
			continue
		}
		set[Normalize(clean)] = struct{}{}
	}
	return set
}

func keepAlphanumeric(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return r
	}
	return -1
}

// Len returns the number of tokens.
func (s Set) Len() int {
	return len(s)
}

// Empty reports whether the set holds no tokens.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Contains reports whether token is a member of the set.
func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// SubsetOf reports whether every token of s also appears in other.
func (s Set) SubsetOf(other Set) bool {
	if len(s) > len(other) {
		return false
	}
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same tokens.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// Sorted returns the tokens in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String renders the set as space-separated sorted tokens, which tokenizes
// back to the same set.
func (s Set) String() string {
	return strings.Join(s.Sorted(), " ")
}
