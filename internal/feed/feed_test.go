package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/hasta/internal/swipe"
)

// recordingScroller captures scroll requests for assertions.
type recordingScroller struct {
	indexes []int
	offsets []int
}

func (r *recordingScroller) ScrollTo(index, offsetPx int) {
	r.indexes = append(r.indexes, index)
	r.offsets = append(r.offsets, offsetPx)
}

func colorDeck(n int) []Panel {
	panels := make([]Panel, n)
	for i := range panels {
		panels[i] = Panel{ID: string(rune('a' + i)), Kind: KindColor, Position: i}
	}
	return panels
}

func TestController_StartsAtFirstPanel(t *testing.T) {
	c := NewController(Config{Panels: colorDeck(4)})
	assert.Equal(t, 0, c.ActiveIndex())
	assert.Equal(t, 4, c.PanelCount())
}

func TestController_NextAdvances(t *testing.T) {
	scroller := &recordingScroller{}
	c := NewController(Config{
		Panels:         colorDeck(4),
		ViewportHeight: 800,
		Scroller:       scroller,
	})

	changed := c.OnSwipe(swipe.Next)
	require.True(t, changed)
	assert.Equal(t, 1, c.ActiveIndex())
	require.Len(t, scroller.indexes, 1)
	assert.Equal(t, 1, scroller.indexes[0])
	assert.Equal(t, 800, scroller.offsets[0], "offset is index * viewport height")
}

func TestController_PrevRetreats(t *testing.T) {
	c := NewController(Config{Panels: colorDeck(4)})

	c.OnSwipe(swipe.Next)
	c.OnSwipe(swipe.Next)
	changed := c.OnSwipe(swipe.Prev)
	require.True(t, changed)
	assert.Equal(t, 1, c.ActiveIndex())
}

func TestController_NextAtLastPanelIsNoOp(t *testing.T) {
	scroller := &recordingScroller{}
	c := NewController(Config{Panels: colorDeck(4), Scroller: scroller})

	// Walk to the last panel (index 3), then swipe once more.
	for i := 0; i < 3; i++ {
		require.True(t, c.OnSwipe(swipe.Next))
	}
	require.Equal(t, 3, c.ActiveIndex())

	before := len(scroller.indexes)
	changed := c.OnSwipe(swipe.Next)

	assert.False(t, changed)
	assert.Equal(t, 3, c.ActiveIndex())
	assert.Len(t, scroller.indexes, before, "no scroll request at the boundary")
}

func TestController_PrevAtFirstPanelIsNoOp(t *testing.T) {
	scroller := &recordingScroller{}
	c := NewController(Config{Panels: colorDeck(4), Scroller: scroller})

	changed := c.OnSwipe(swipe.Prev)

	assert.False(t, changed)
	assert.Equal(t, 0, c.ActiveIndex())
	assert.Empty(t, scroller.indexes)
}

func TestController_OnChangeObserver(t *testing.T) {
	var seen []int
	c := NewController(Config{
		Panels:   colorDeck(3),
		OnChange: func(index int) { seen = append(seen, index) },
	})

	c.OnSwipe(swipe.Next)
	c.OnSwipe(swipe.Next)
	c.OnSwipe(swipe.Next) // boundary no-op, must not notify
	c.OnSwipe(swipe.Prev)

	assert.Equal(t, []int{1, 2, 1}, seen)
}

func TestController_OnChangeSeesFreshCount(t *testing.T) {
	// Observers read back from the controller to render "panel n of m";
	// after a deck reload they must see the new count, not a stale one.
	var counts []int
	var c *Controller
	c = NewController(Config{
		Panels:   colorDeck(3),
		OnChange: func(index int) { counts = append(counts, c.PanelCount()) },
	})

	c.OnSwipe(swipe.Next)
	c.SetPanels(colorDeck(6))
	c.OnSwipe(swipe.Next)

	assert.Equal(t, []int{3, 6}, counts)
}

func TestController_ActivePanel(t *testing.T) {
	t.Run("returns current panel", func(t *testing.T) {
		panels := colorDeck(3)
		c := NewController(Config{Panels: panels})

		c.OnSwipe(swipe.Next)
		p, ok := c.ActivePanel()
		require.True(t, ok)
		assert.Equal(t, panels[1].ID, p.ID)
	})

	t.Run("empty feed", func(t *testing.T) {
		c := NewController(Config{})
		_, ok := c.ActivePanel()
		assert.False(t, ok)
	})
}

func TestController_SetPanelsClampsIndex(t *testing.T) {
	c := NewController(Config{Panels: colorDeck(5)})

	for i := 0; i < 4; i++ {
		c.OnSwipe(swipe.Next)
	}
	require.Equal(t, 4, c.ActiveIndex())

	c.SetPanels(colorDeck(2))
	assert.Equal(t, 1, c.ActiveIndex())

	c.SetPanels(nil)
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestController_PanelsReturnsCopy(t *testing.T) {
	c := NewController(Config{Panels: colorDeck(2)})

	got := c.Panels()
	got[0].ID = "mutated"

	fresh := c.Panels()
	assert.NotEqual(t, "mutated", fresh[0].ID)
}
