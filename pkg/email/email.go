// Package email derives presentable account fields from an email address when
// registration leaves them blank.
package email

import (
	"strings"
	"unicode"
)

func isSeparator(r rune) bool {
	return r == '.' || r == '_' || r == '-' || r == '+'
}

// DeriveNameFromEmail splits the local part of an address into a first and
// last name. "jane.doe@example.org" yields ("Jane", "Doe"); when the local
// part has a single word the last name falls back to "User".
func DeriveNameFromEmail(addr string) (string, string) {
	local := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		local = addr[:at]
	}

	words := strings.FieldsFunc(local, isSeparator)
	switch len(words) {
	case 0:
		return "User", "User"
	case 1:
		return title(words[0]), "User"
	default:
		return title(words[0]), title(words[len(words)-1])
	}
}

func title(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
