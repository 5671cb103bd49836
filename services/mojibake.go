package services

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairMojibake repariert Texte, deren UTF-8-Bytes als \u00XX-Escapes exportiert
// wurden ("Ã¤" statt "ä"). Nur wenn alle Runen in Latin-1 liegen und die
// zurückkodierten Bytes gültiges UTF-8 ergeben, wird der reparierte Text geliefert.
func RepairMojibake(s string) string {
	if s == "" {
		return s
	}
	hasHigh := false
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		if r >= 0x80 {
			hasHigh = true
		}
	}
	if !hasHigh {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) {
		return s
	}
	return raw
}
