package cloud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-cloud/models"
	"chat-cloud/renderers"
)

func TestRender_TextOnly(t *testing.T) {
	scene := New(Options{}).Render([]models.WordCount{{Name: "a", Value: 1}, {Name: "big word", Value: 9}})
	require.Len(t, scene.Leaves, 2)

	for _, l := range scene.Leaves {
		assert.Greater(t, l.R, 0.0)
		assert.Empty(t, l.Fill, "no circle fill in the cloud")
		assert.Equal(t, l.R, l.FontSize)
		assert.Equal(t, l.Color, l.TextFill)
		assert.False(t, l.Hover)
		assert.Contains(t, l.Title, l.Name)
	}
	assert.Equal(t, []string{"a"}, scene.Leaves[0].Lines)
	assert.Equal(t, []string{"big", "word"}, scene.Leaves[1].Lines)
	assert.False(t, scene.HasHover())
}

func TestRender_HoverTooltipOption(t *testing.T) {
	scene := New(Options{HoverTooltip: true}).Render([]models.WordCount{{Name: "a", Value: 1}})
	require.Len(t, scene.Leaves, 1)
	assert.True(t, scene.Leaves[0].Hover)
	assert.True(t, scene.HasHover())
	assert.Equal(t, "cloud-tooltip", scene.Tooltip.ID)
}

func TestRender_SVGHasTitleAndLabels(t *testing.T) {
	raw, err := New(Options{}).Render([]models.WordCount{{Name: "a", Value: 1}}).SVG()
	require.NoError(t, err)
	svg := string(raw)
	assert.Contains(t, svg, "<title>a - 1</title>")
	assert.Contains(t, svg, `<tspan x="0" y="0.3em">a</tspan>`)
	assert.Equal(t, 1, strings.Count(svg, "<text"))
}

func TestRenderer_Kind(t *testing.T) {
	var r renderers.Renderer = New(Options{})
	assert.Equal(t, renderers.KindCloud, r.Kind())
}
