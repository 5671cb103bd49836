package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer zerlegt Nachrichtentext in normalisierte Terme.
type Tokenizer interface {
	// Normalize liefert den "normalen" Text: Kleinschreibung, vereinheitlichte
	// Unicode-Form, kollabierte Leerzeichen und aufgelöste Kontraktionen.
	Normalize(text string) string

	// Terms teilt normalisierten Text in einzelne Terme. Anhängende Satzzeichen
	// bleiben am Term, sie entfernt StripPunctuation.
	Terms(text string) []string
}

// typographicReplacer vereinheitlicht Apostrophe und Anführungszeichen.
var typographicReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"ʼ", "'",
	"“", "\"",
	"”", "\"",
	"…", "...",
)

// irregularNegations haben keinen einfachen Stamm vor "n't".
var irregularNegations = map[string]string{
	"can't":  "can not",
	"won't":  "will not",
	"shan't": "shall not",
	"ain't":  "is not",
	"cannot": "can not",
}

// contractionSuffixes werden in Reihenfolge geprüft; "'s" bleibt unangetastet,
// weil es meist ein Genitiv ist.
var contractionSuffixes = []struct {
	suffix string
	expand string
}{
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'m", " am"},
	{"'d", " would"},
}

// EnglishTokenizer ist der Standard-Tokenizer für englischsprachige Exporte.
// Ein Caser ist zustandsbehaftet, deshalb wird er pro Aufruf erzeugt.
type EnglishTokenizer struct {
	tag language.Tag
}

func NewEnglishTokenizer() *EnglishTokenizer {
	return &EnglishTokenizer{tag: language.English}
}

func (t *EnglishTokenizer) Normalize(text string) string {
	text = typographicReplacer.Replace(text)
	text = stripDiacritics(text)
	text = cases.Lower(t.tag).String(text)

	fields := strings.Fields(text)
	for i, f := range fields {
		fields[i] = expandContraction(f)
	}
	return strings.Join(fields, " ")
}

func (t *EnglishTokenizer) Terms(text string) []string {
	return strings.Fields(text)
}

// stripDiacritics zerlegt kompatibel (NFKD), entfernt kombinierende Zeichen und
// setzt den Rest wieder zusammen.
func stripDiacritics(s string) string {
	tr := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(tr, s)
	if err != nil {
		return s
	}
	return out
}

// expandContraction löst eine Kontraktion auf. Satzzeichen am Wortende werden
// abgetrennt und danach wieder angehängt ("can't!" -> "can not!").
func expandContraction(word string) string {
	core := strings.TrimRightFunc(word, func(r rune) bool {
		return r != '\'' && unicode.IsPunct(r)
	})
	tail := word[len(core):]
	if expanded, ok := irregularNegations[core]; ok {
		return expanded + tail
	}
	if !strings.Contains(core, "'") {
		return word
	}
	for _, c := range contractionSuffixes {
		if !strings.HasSuffix(core, c.suffix) {
			continue
		}
		stem := strings.TrimSuffix(core, c.suffix)
		if stem == "" || !isLetters(stem) {
			return word
		}
		return stem + c.expand + tail
	}
	return word
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
