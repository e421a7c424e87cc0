package cookbook

import (
	"strings"
	"unicode"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

// ParseHandwriting normalizes a scribbled recipe name: hyphens and
// underscores become spaces, anything but letters and whitespace is dropped,
// whitespace is collapsed and every word is capitalised.
func ParseHandwriting(input string) (string, error) {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r == '-' || r == '_':
			b.WriteRune(' ')
		case unicode.IsLetter(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	if len(words) == 0 {
		return "", apperrors.ErrInvalidRecipeName
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " "), nil
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
