package cloud

import (
	"chat-cloud/layout"
	"chat-cloud/models"
	"chat-cloud/renderers"
)

// Options steuern die optionalen Teile der Wortwolke.
type Options struct {
	// HoverTooltip verdrahtet den schwebenden Tooltip wie bei den Blasen.
	// Standardmäßig aus, der Titel ist immer vorhanden.
	HoverTooltip bool
}

// Renderer zeichnet nur Text: jedes Wort füllt ungefähr seinen gepackten Kreis.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) Kind() renderers.Kind {
	return renderers.KindCloud
}

func (r *Renderer) Render(words []models.WordCount) renderers.Scene {
	scene := renderers.Base(renderers.KindCloud, words)
	for i := range scene.Leaves {
		l := &scene.Leaves[i]
		l.Lines = layout.SplitLabel(l.Name)
		l.FontSize = l.R
		l.TextFill = l.Color
		l.Hover = r.opts.HoverTooltip
	}
	return scene
}

var _ renderers.Renderer = (*Renderer)(nil)
