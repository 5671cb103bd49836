package controller

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-cloud/models"
	"chat-cloud/renderers"
)

var sample = []models.WordCount{{Name: "hello", Value: 2}, {Name: "world", Value: 2}}

func TestNewPage_StartsEmpty(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	v := p.View()
	assert.Equal(t, StateEmpty, v.State)
	assert.Equal(t, renderers.KindCloud, v.Kind)
	assert.Equal(t, "Bubbles", v.ToggleLabel)
	assert.Empty(t, v.Words)

	assert.Equal(t, renderers.KindCloud, NewPage("").View().Kind)
	assert.Equal(t, renderers.KindBubbles, NewPage(renderers.KindBubbles).View().Kind)
}

func TestPage_ToggleRequiresData(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	kind, err := p.Toggle()
	assert.True(t, errors.Is(err, ErrNotLoaded))
	assert.Equal(t, renderers.KindCloud, kind)
}

func TestPage_LoadAndToggleTwice(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Load(sample)
	require.Equal(t, StateLoaded, p.View().State)

	kind, err := p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, renderers.KindBubbles, kind)
	assert.Equal(t, "Word Cloud", p.View().ToggleLabel)

	kind, err = p.Toggle()
	require.NoError(t, err)
	assert.Equal(t, renderers.KindCloud, kind)

	v := p.View()
	assert.Equal(t, StateLoaded, v.State)
	assert.Equal(t, sample, v.Words)
}

func TestPage_LoadReplaces(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Load(sample)
	p.Load([]models.WordCount{{Name: "new", Value: 1}})
	assert.Equal(t, []models.WordCount{{Name: "new", Value: 1}}, p.View().Words)
	assert.Equal(t, uint64(2), p.View().Uploads)
}

func TestPage_LoadEmptyShowsNoData(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Load(sample)
	p.Load(nil)

	v := p.View()
	assert.Equal(t, StateEmpty, v.State)
	assert.Empty(t, v.Words)
	assert.Equal(t, NoticeNoWords, v.Notice)
}

func TestPage_FailKeepsState(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Fail(errors.New("could not parse file"))
	v := p.View()
	assert.Equal(t, StateEmpty, v.State)
	assert.Equal(t, "could not parse file", v.Error)

	p.Load(sample)
	assert.Empty(t, p.View().Error)

	p.Fail(errors.New("boom"))
	v = p.View()
	assert.Equal(t, StateLoaded, v.State)
	assert.Equal(t, sample, v.Words)
	assert.Equal(t, "boom", v.Error)

	p.Fail(nil)
	assert.Equal(t, "boom", p.View().Error)
}

func TestPage_PresentShowsErrorOnce(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Load(sample)
	p.Fail(errors.New("could not parse file"))

	// View does not consume
	assert.Equal(t, "could not parse file", p.View().Error)

	first := p.Present()
	assert.Equal(t, "could not parse file", first.Error)
	assert.Equal(t, StateLoaded, first.State)

	second := p.Present()
	assert.Empty(t, second.Error)
	assert.Equal(t, sample, second.Words)
}

func TestPage_PresentShowsNoticeOnce(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	p.Load(nil)
	assert.Equal(t, NoticeNoWords, p.Present().Notice)
	v := p.Present()
	assert.Empty(t, v.Notice)
	assert.Equal(t, StateEmpty, v.State)
}

func TestPage_ViewIsACopy(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	input := models.Clone(sample)
	p.Load(input)
	input[0].Value = 99

	v := p.View()
	v.Words[1].Value = 42
	assert.Equal(t, sample, p.View().Words)
}

func TestPage_ConcurrentLoads(t *testing.T) {
	p := NewPage(renderers.KindCloud)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.Load([]models.WordCount{{Name: "w", Value: i + 1}})
			_, _ = p.Toggle()
			_ = p.View()
		}(i)
	}
	wg.Wait()

	v := p.View()
	assert.Equal(t, StateLoaded, v.State)
	require.Len(t, v.Words, 1)
	assert.Equal(t, uint64(50), v.Uploads)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "loaded", StateLoaded.String())
}
