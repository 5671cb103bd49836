package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-cloud/models"
	"chat-cloud/renderers"
)

func TestSessions_GetCreatesAndReuses(t *testing.T) {
	s := NewSessions(time.Hour, renderers.KindBubbles)

	id, page := s.Get("")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, renderers.KindBubbles, page.View().Kind)

	page.Load([]models.WordCount{{Name: "a", Value: 1}})
	again, samePage := s.Get(id)
	assert.Equal(t, id, again)
	assert.Same(t, page, samePage)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_UnknownIdGetsNewSession(t *testing.T) {
	s := NewSessions(time.Hour, renderers.KindCloud)
	id, _ := s.Get("not-a-session")
	assert.NotEqual(t, "not-a-session", id)

	_, ok := s.Lookup("not-a-session")
	assert.False(t, ok)
	page, ok := s.Lookup(id)
	assert.True(t, ok)
	assert.NotNil(t, page)
}

func TestSessions_Expire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(time.Minute, renderers.KindCloud)
	s.now = func() time.Time { return now }

	id, page := s.Get("")
	now = now.Add(30 * time.Second)
	_, same := s.Get(id)
	assert.Same(t, page, same)

	now = now.Add(2 * time.Minute)
	newID, fresh := s.Get(id)
	assert.NotEqual(t, id, newID)
	assert.NotSame(t, page, fresh)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_NoTTLKeepsEverything(t *testing.T) {
	now := time.Now()
	s := NewSessions(0, renderers.KindCloud)
	s.now = func() time.Time { return now }
	id, _ := s.Get("")
	now = now.Add(1000 * time.Hour)
	_, ok := s.Lookup(id)
	assert.True(t, ok)
}

func TestSessions_LookupDoesNotCreate(t *testing.T) {
	s := NewSessions(time.Hour, renderers.KindCloud)
	for i := 0; i < 100; i++ {
		_, ok := s.Lookup(uuid.NewString())
		assert.False(t, ok)
	}
	_, ok := s.Lookup("")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessions_LookupExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(time.Minute, renderers.KindCloud)
	s.now = func() time.Time { return now }

	id, _ := s.Get("")
	now = now.Add(2 * time.Minute)
	_, ok := s.Lookup(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessions_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(time.Minute, renderers.KindCloud)
	s.now = func() time.Time { return now }

	s.Get("")
	s.Get("")
	kept, _ := s.Get("")
	now = now.Add(50 * time.Second)
	_, ok := s.Lookup(kept)
	require.True(t, ok)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, ok = s.Lookup(kept)
	assert.True(t, ok)

	assert.Equal(t, 0, s.Sweep())
}

func TestSessions_SweepWithoutTTL(t *testing.T) {
	s := NewSessions(0, renderers.KindCloud)
	s.Get("")
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, s.Len())
}
