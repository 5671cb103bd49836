package renderers

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"chat-cloud/layout"
)

// Scene ist der fertige, unveränderliche Szenengraph eines Render-Aufrufs.
type Scene struct {
	ID      string
	Kind    Kind
	Width   float64
	Height  float64
	Leaves  []Leaf
	Tooltip Tooltip
}

// Leaf ist ein Kreis bzw. Label für genau einen WordCount-Eintrag.
type Leaf struct {
	ID     string
	ClipID string
	Name   string
	Value  int
	X      float64
	Y      float64
	R      float64
	Color  drawing.Color
	Title  string

	// Fill ist die Nullfarbe, wenn der Kreis nur als Clip-Geometrie dient.
	// Der Alphakanal wird zu fill-opacity.
	Fill drawing.Color

	// Lines und FontSize sind nur gesetzt, wenn Beschriftung aktiv ist.
	Lines    []string
	FontSize float64
	TextFill drawing.Color

	// Hover verdrahtet den schwebenden Tooltip der Szene.
	Hover bool
}

// TooltipText ist der Inhalt des schwebenden Tooltips, ohne Tausendertrennung.
func (l Leaf) TooltipText() string {
	return fmt.Sprintf("%s - %d", l.Name, l.Value)
}

// Tooltip beschreibt das schwebende Element, das zur Szene gehört und mit ihr
// erzeugt und entfernt wird.
type Tooltip struct {
	ID          string
	Top         int
	Left        int
	PaddingLeft int
	Opacity     float64
	FadeIn      time.Duration
	FadeOut     time.Duration
}

func NewTooltip(id string) Tooltip {
	return Tooltip{
		ID:          id,
		PaddingLeft: 16,
		Opacity:     0.9,
		FadeIn:      200 * time.Millisecond,
		FadeOut:     500 * time.Millisecond,
	}
}

// HasHover meldet, ob mindestens ein Blatt den Tooltip nutzt.
func (s Scene) HasHover() bool {
	for _, l := range s.Leaves {
		if l.Hover {
			return true
		}
	}
	return false
}

// IDs vergibt fortlaufende, pro Render-Aufruf eindeutige Element-Ids.
type IDs struct {
	prefix string
	n      int
}

func NewIDs(prefix string) *IDs {
	return &IDs{prefix: prefix}
}

func (g *IDs) Next(kind string) string {
	g.n++
	return fmt.Sprintf("%s-%s-%d", g.prefix, kind, g.n)
}

type svgDoc struct {
	XMLName    xml.Name   `xml:"http://www.w3.org/2000/svg svg"`
	ID         string     `xml:"id,attr"`
	ViewBox    string     `xml:"viewBox,attr"`
	FontSize   int        `xml:"font-size,attr"`
	FontFamily string     `xml:"font-family,attr"`
	TextAnchor string     `xml:"text-anchor,attr"`
	Groups     []svgGroup `xml:"g"`
}

type svgGroup struct {
	Transform string    `xml:"transform,attr"`
	Name      string    `xml:"data-name,attr"`
	Value     int       `xml:"data-value,attr"`
	Tooltip   string    `xml:"data-tooltip,attr,omitempty"`
	Circle    svgCircle `xml:"circle"`
	Clip      svgClip   `xml:"clipPath"`
	Text      *svgText  `xml:"text,omitempty"`
	Title     string    `xml:"title"`
}

type svgCircle struct {
	ID          string `xml:"id,attr"`
	R           string `xml:"r,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
}

type svgClip struct {
	ID  string `xml:"id,attr"`
	Use svgUse `xml:"use"`
}

type svgUse struct {
	Href string `xml:"href,attr"`
}

type svgText struct {
	ClipPath string     `xml:"clip-path,attr"`
	FontSize string     `xml:"font-size,attr"`
	Fill     string     `xml:"fill,attr,omitempty"`
	Spans    []svgTspan `xml:"tspan"`
}

type svgTspan struct {
	X    string `xml:"x,attr"`
	Y    string `xml:"y,attr"`
	Text string `xml:",chardata"`
}

// SVG kodiert die Szene als eigenständiges SVG-Dokument.
func (s Scene) SVG() ([]byte, error) {
	doc := svgDoc{
		ID:         s.ID,
		ViewBox:    fmt.Sprintf("0 0 %s %s", num(s.Width), num(s.Height)),
		FontSize:   10,
		FontFamily: "sans-serif",
		TextAnchor: "middle",
	}
	for _, l := range s.Leaves {
		g := svgGroup{
			Transform: fmt.Sprintf("translate(%s,%s)", num(l.X), num(l.Y)),
			Name:      l.Name,
			Value:     l.Value,
			Circle: svgCircle{
				ID:   l.ID,
				R:    num(l.R),
				Fill: "none",
			},
			Clip:  svgClip{ID: l.ClipID, Use: svgUse{Href: "#" + l.ID}},
			Title: l.Title,
		}
		if l.Hover {
			g.Tooltip = l.TooltipText()
		}
		if !l.Fill.IsZero() {
			g.Circle.Fill = layout.Hex(l.Fill)
			if l.Fill.A < 255 {
				g.Circle.FillOpacity = num(layout.Opacity(l.Fill))
			}
		}
		if len(l.Lines) > 0 {
			t := &svgText{
				ClipPath: "url(#" + l.ClipID + ")",
				FontSize: num(l.FontSize),
			}
			if !l.TextFill.IsZero() {
				t.Fill = layout.Hex(l.TextFill)
			}
			n := float64(len(l.Lines))
			for i, line := range l.Lines {
				t.Spans = append(t.Spans, svgTspan{
					X:    "0",
					Y:    num(float64(i)-n/2+0.8) + "em",
					Text: line,
				})
			}
			g.Text = t
		}
		doc.Groups = append(doc.Groups, g)
	}
	return xml.Marshal(doc)
}

// num formatiert Koordinaten mit höchstens drei Nachkommastellen.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
