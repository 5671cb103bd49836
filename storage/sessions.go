package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-cloud/controller"
	"chat-cloud/renderers"
)

type session struct {
	page     *controller.Page
	lastSeen time.Time
}

// Sessions hält die Seitenzustände aller Browser nur im Speicher. Eine Sitzung
// gilt nach TTL ohne Zugriff als abgelaufen, Sweep räumt sie periodisch ab.
type Sessions struct {
	mu          sync.Mutex
	ttl         time.Duration
	defaultKind renderers.Kind
	now         func() time.Time
	items       map[string]*session
}

func NewSessions(ttl time.Duration, defaultKind renderers.Kind) *Sessions {
	return &Sessions{
		ttl:         ttl,
		defaultKind: defaultKind,
		now:         time.Now,
		items:       map[string]*session{},
	}
}

// Get liefert die Seite zur Id. Ist die Id unbekannt, abgelaufen oder leer, wird
// eine neue Sitzung angelegt und deren Id zurückgegeben.
func (s *Sessions) Get(id string) (string, *controller.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if sess, ok := s.liveLocked(id, now); ok {
		sess.lastSeen = now
		return id, sess.page
	}
	id = uuid.NewString()
	sess := &session{page: controller.NewPage(s.defaultKind), lastSeen: now}
	s.items[id] = sess
	return id, sess.page
}

// Lookup liefert eine bestehende Seite ohne neue Sitzung anzulegen.
func (s *Sessions) Lookup(id string) (*controller.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess, ok := s.liveLocked(id, now)
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess.page, true
}

// Sweep verwirft alle abgelaufenen Sitzungen und liefert deren Anzahl.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	removed := 0
	for id, sess := range s.items {
		if s.expired(sess, now) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len liefert die Anzahl gespeicherter Sitzungen.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) liveLocked(id string, now time.Time) (*session, bool) {
	if id == "" {
		return nil, false
	}
	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		delete(s.items, id)
		return nil, false
	}
	return sess, true
}

func (s *Sessions) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
