package services

import "regexp"

// trailingPunctuation matcht einen abschließenden Lauf aus ASCII-Satzzeichen.
var trailingPunctuation = regexp.MustCompile("[!\"#$%&'()*+,\\-./:;<=>?@\\[\\\\\\]^_`{|}~]+$")

// StripPunctuation entfernt nur den abschließenden Lauf von Satzzeichen.
// Führende und interne Zeichen ("don't", "e-mail") bleiben erhalten.
func StripPunctuation(token string) string {
	return trailingPunctuation.ReplaceAllString(token, "")
}
