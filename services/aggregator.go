package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chat-cloud/models"
)

var (
	// ErrParse kennzeichnet ein Dokument, das kein gültiges JSON-Objekt ist.
	ErrParse = errors.New("could not parse file")
	// ErrMissingMessages kennzeichnet ein Dokument ohne "messages"-Feld.
	ErrMissingMessages = errors.New("document has no messages field")
)

// AggregateOptions steuern die Vorverarbeitung der Nachrichtentexte.
type AggregateOptions struct {
	RepairMojibake bool
}

// Aggregator erzeugt aus einem Chat-Export die Worthäufigkeitstabelle.
type Aggregator struct {
	tokenizer Tokenizer
	opts      AggregateOptions
	logger    *zap.Logger
}

func NewAggregator(tokenizer Tokenizer, opts AggregateOptions, logger *zap.Logger) *Aggregator {
	if tokenizer == nil {
		tokenizer = NewEnglishTokenizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{tokenizer: tokenizer, opts: opts, logger: logger}
}

// Decode liest den Export und prüft, dass "messages" vorhanden ist.
func Decode(raw []byte) (models.Export, error) {
	var export models.Export
	if err := json.Unmarshal(raw, &export); err != nil {
		return models.Export{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if export.Messages == nil {
		return models.Export{}, ErrMissingMessages
	}
	return export, nil
}

// Aggregate parst den Dateiinhalt und zählt die bereinigten Terme aller Nachrichten.
func (a *Aggregator) Aggregate(raw []byte) ([]models.WordCount, error) {
	export, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	texts := export.Texts()
	if a.opts.RepairMojibake {
		for i, t := range texts {
			texts[i] = RepairMojibake(t)
		}
	}
	return a.AggregateMessages(texts), nil
}

// AggregateMessages zählt die Terme bereits extrahierter Nachrichtentexte.
// Die Reihenfolge der Tabelle entspricht dem ersten Auftreten.
func (a *Aggregator) AggregateMessages(texts []string) []models.WordCount {
	index := map[string]int{}
	words := []models.WordCount{}
	terms := 0
	for _, text := range texts {
		if text == "" {
			continue
		}
		normal := a.tokenizer.Normalize(text)
		for _, term := range a.tokenizer.Terms(normal) {
			token := StripPunctuation(term)
			if token == "" {
				continue
			}
			terms++
			if i, ok := index[token]; ok {
				words[i].Value++
				continue
			}
			index[token] = len(words)
			words = append(words, models.WordCount{Name: token, Value: 1})
		}
	}
	a.logger.Debug("Aggregated word frequencies",
		zap.Int("messages", len(texts)),
		zap.Int("terms", terms),
		zap.Int("distinct", len(words)))
	return words
}
