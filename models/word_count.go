package models

// WordCount ist ein Eintrag der Worthäufigkeitstabelle.
type WordCount struct {
	Name  string `json:"name" binding:"required"`
	Value int    `json:"value" binding:"gte=1"`
}

// Total summiert alle Zählwerte einer Tabelle.
func Total(words []WordCount) int {
	total := 0
	for _, w := range words {
		total += w.Value
	}
	return total
}

// Clone kopiert eine Tabelle, damit Aufrufer den gehaltenen Zustand nicht verändern.
func Clone(words []WordCount) []WordCount {
	if words == nil {
		return nil
	}
	out := make([]WordCount, len(words))
	copy(out, words)
	return out
}
