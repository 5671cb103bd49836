package renderers

import (
	"fmt"
	"strings"

	"chat-cloud/layout"
	"chat-cloud/models"
)

// Kind benennt eine Darstellungsvariante.
type Kind string

const (
	KindBubbles Kind = "bubbles"
	KindCloud   Kind = "cloud"
)

// Label ist die Beschriftung der Variante auf dem Umschalter.
func (k Kind) Label() string {
	switch k {
	case KindBubbles:
		return "Bubbles"
	case KindCloud:
		return "Word Cloud"
	default:
		return string(k)
	}
}

// Other liefert die jeweils andere Variante.
func (k Kind) Other() Kind {
	if k == KindBubbles {
		return KindCloud
	}
	return KindBubbles
}

// ParseKind akzeptiert "bubbles" und "cloud" (Groß-/Kleinschreibung egal).
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBubbles:
		return KindBubbles, nil
	case KindCloud:
		return KindCloud, nil
	default:
		return "", fmt.Errorf("unknown renderer %q", s)
	}
}

// Renderer ist das Interface, das jede Darstellungsvariante implementieren muss.
type Renderer interface {
	// Kind gibt den eindeutigen Namen der Variante zurück.
	Kind() Kind

	// Render erzeugt aus der Worttabelle eine vollständige Szene.
	Render(words []models.WordCount) Scene
}

const (
	// SceneSize ist die logische Kantenlänge der Szene.
	SceneSize = 300
	// Margin wird vom Pack-Bereich abgezogen und als Versatz wieder addiert.
	Margin = 2
	// Padding ist der Abstand zwischen benachbarten Kreisen.
	Padding = 3
)

// Base packt die Wörter und vergibt Ids, Farben und Titel. Die Varianten
// ergänzen Füllung, Beschriftung und Tooltip.
func Base(kind Kind, words []models.WordCount) Scene {
	ids := NewIDs(string(kind))
	scene := Scene{
		ID:      string(kind) + "-scene",
		Kind:    kind,
		Width:   SceneSize,
		Height:  SceneSize,
		Tooltip: NewTooltip(string(kind) + "-tooltip"),
	}
	if len(words) == 0 {
		return scene
	}

	values := make([]float64, len(words))
	names := make([]string, len(words))
	for i, w := range words {
		values[i] = float64(w.Value)
		names[i] = w.Name
	}
	circles := layout.Pack(values, SceneSize-Margin, SceneSize-Margin, Padding)
	palette := layout.NewPalette(names)

	scene.Leaves = make([]Leaf, len(words))
	for i, w := range words {
		c := circles[i]
		scene.Leaves[i] = Leaf{
			ID:     ids.Next("leaf"),
			ClipID: ids.Next("clip"),
			Name:   w.Name,
			Value:  w.Value,
			X:      c.X + Margin/2,
			Y:      c.Y + Margin/2,
			R:      c.R,
			Color:  palette.Color(w.Name),
			Title:  fmt.Sprintf("%s - %s", w.Name, layout.FormatCount(w.Value)),
		}
	}
	return scene
}
