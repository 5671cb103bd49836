package models

// RawMessage repräsentiert eine einzelne Nachricht aus dem Chat-Export.
// Weitere Felder echter Exporte (sender_name, timestamp_ms, ...) werden ignoriert.
type RawMessage struct {
	Content string `json:"content,omitempty"`
}

// Export ist das hochgeladene Dokument. Messages ist ein Pointer, damit ein
// fehlendes Feld von einer leeren Liste unterschieden werden kann.
type Export struct {
	Messages *[]RawMessage `json:"messages"`
}

// Texts liefert die nicht-leeren Nachrichtentexte in Export-Reihenfolge.
func (e Export) Texts() []string {
	if e.Messages == nil {
		return nil
	}
	texts := make([]string, 0, len(*e.Messages))
	for _, m := range *e.Messages {
		if m.Content == "" {
			continue
		}
		texts = append(texts, m.Content)
	}
	return texts
}
