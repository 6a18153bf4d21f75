package automation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText strips diacritics, lowercases, and collapses whitespace so
// dropdown option matching survives the portal's inconsistent option
// spellings.
func foldText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.Join(strings.Fields(strings.ToLower(result)), " ")
}
