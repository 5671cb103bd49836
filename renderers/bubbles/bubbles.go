package bubbles

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chat-cloud/layout"
	"chat-cloud/models"
	"chat-cloud/renderers"
)

// Options steuern die optionalen Teile der Blasen-Darstellung.
type Options struct {
	// Labels zeichnet den Namen zusätzlich in den Kreis. Standardmäßig aus.
	Labels bool
}

const (
	// labelFontSize entspricht der Schriftgröße des SVG-Wurzelelements.
	labelFontSize = 10
	fillOpacity   = 0.7
)

// Renderer zeichnet gefüllte, gepackte Kreise mit schwebendem Tooltip.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) Kind() renderers.Kind {
	return renderers.KindBubbles
}

func (r *Renderer) Render(words []models.WordCount) renderers.Scene {
	scene := renderers.Base(renderers.KindBubbles, words)
	for i := range scene.Leaves {
		l := &scene.Leaves[i]
		l.Fill = l.Color.WithAlpha(drawing.ColorChannelFromFloat(fillOpacity))
		l.Hover = true
		if r.opts.Labels {
			l.Lines = layout.SplitLabel(l.Name)
			l.FontSize = labelFontSize
		}
	}
	return scene
}

var _ renderers.Renderer = (*Renderer)(nil)
