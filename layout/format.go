package layout

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount renders n with thousands separators ("12,345").
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// SplitLabel breaks a label into lines before an uppercase letter that is
// followed by a lowercase letter, and on whitespace runs. Empty pieces are dropped.
func SplitLabel(name string) []string {
	rs := []rune(name)
	var (
		parts []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	for i, r := range rs {
		if unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
			flush()
		}
		cur.WriteRune(r)
	}
	flush()
	return parts
}
