package controller

import (
	"errors"
	"sync"

	"chat-cloud/models"
	"chat-cloud/renderers"
)

// ErrNotLoaded wird geliefert, wenn ohne geladene Daten umgeschaltet wird.
var ErrNotLoaded = errors.New("no data loaded")

// NoticeNoWords erscheint, wenn eine Datei gültig war, aber keine Wörter enthielt.
const NoticeNoWords = "The file was read, but it contains no words."

// State ist der Zustand der Seite.
type State int

const (
	StateEmpty State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// View ist eine Momentaufnahme für ein einzelnes Rendern der Seite.
type View struct {
	State       State
	Kind        renderers.Kind
	ToggleLabel string
	Words       []models.WordCount
	Error       string
	Notice      string
	Uploads     uint64
}

// Page hält den flüchtigen Zustand einer Browser-Sitzung.
type Page struct {
	mu      sync.Mutex
	state   State
	kind    renderers.Kind
	words   []models.WordCount
	err     string
	notice  string
	uploads uint64
}

func NewPage(kind renderers.Kind) *Page {
	if kind != renderers.KindBubbles {
		kind = renderers.KindCloud
	}
	return &Page{kind: kind}
}

// Load ersetzt die Tabelle. Eine leere Tabelle gilt als "keine Daten".
func (p *Page) Load(words []models.WordCount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploads++
	p.err = ""
	if len(words) == 0 {
		p.state = StateEmpty
		p.words = nil
		p.notice = NoticeNoWords
		return
	}
	p.state = StateLoaded
	p.words = models.Clone(words)
	p.notice = ""
}

// Fail merkt sich einen sichtbaren Fehler, Zustand und Tabelle bleiben unverändert.
func (p *Page) Fail(err error) {
	if err == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err.Error()
	p.notice = ""
}

// Toggle wechselt die aktive Darstellung und liefert die neue Variante.
func (p *Page) Toggle() (renderers.Kind, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateLoaded {
		return p.kind, ErrNotLoaded
	}
	p.kind = p.kind.Other()
	p.err = ""
	return p.kind, nil
}

// View liefert eine Kopie des Zustands. Die Tabelle wird kopiert.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

// Present liefert die Momentaufnahme für die Seite. Fehler und Hinweis werden
// nur einmal angezeigt und danach verworfen.
func (p *Page) Present() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.viewLocked()
	p.err = ""
	p.notice = ""
	return v
}

func (p *Page) viewLocked() View {
	return View{
		State:       p.state,
		Kind:        p.kind,
		ToggleLabel: p.kind.Other().Label(),
		Words:       models.Clone(p.words),
		Error:       p.err,
		Notice:      p.notice,
		Uploads:     p.uploads,
	}
}
