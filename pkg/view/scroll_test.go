package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/view"
)

func newScrollView(t *testing.T, fragment string) (*view.View, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseFragment(fragment)
	require.NoError(t, err)
	return view.New(doc.Body(), &fakeDelegate{rec: &recorder{}}), doc
}

func TestScrollToAnchor_FocusesThenScrolls(t *testing.T) {
	v, doc := newScrollView(t, `<h2 id="exists">section</h2>`)

	v.ScrollToAnchor("exists")

	target := doc.Body().Children()[0]
	assert.Same(t, target, doc.ActiveElement(), "anchor target receives focus")
	assert.Same(t, target, doc.Viewport().Target(), "anchor target is scrolled into view")
}

func TestScrollToAnchor_MissingScrollsToOrigin(t *testing.T) {
	v, doc := newScrollView(t, `<div id="other"></div>`)
	doc.Viewport().ScrollTo(120, 900)

	v.ScrollToAnchor("missing")

	x, y := doc.Viewport().Position()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.Nil(t, doc.ActiveElement())
}

func TestScrollToAnchorFromLocation(t *testing.T) {
	v, doc := newScrollView(t, `<p id="comments"></p>`)

	v.ScrollToAnchorFromLocation("/articles/42#comments")
	assert.Same(t, doc.Body().Children()[0], doc.Viewport().Target())

	doc.Viewport().ScrollTo(0, 33)
	v.ScrollToAnchorFromLocation("/articles/42")
	x, y := doc.Viewport().Position()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y, "no fragment scrolls to origin")
}

type recordingScroller struct {
	x, y  float64
	calls int
}

func (s *recordingScroller) ScrollTo(x, y float64) {
	s.x, s.y = x, y
	s.calls++
}

func TestScrollRootOverride(t *testing.T) {
	doc, err := dom.ParseFragment(`<div></div>`)
	require.NoError(t, err)

	custom := &recordingScroller{}
	v := view.New(doc.Body(), &fakeDelegate{rec: &recorder{}}, view.WithScrollRoot(custom))

	v.ScrollToPosition(10, 20)
	v.ScrollToTop()

	assert.Equal(t, 2, custom.calls)
	assert.Equal(t, 0.0, custom.x)
	assert.Equal(t, 0.0, custom.y)

	x, y := doc.Viewport().Position()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y, "the default viewport is bypassed")
}

func TestFocusElement_TemporaryTabindexIsRestored(t *testing.T) {
	v, doc := newScrollView(t, `<div id="plain"></div>`)
	el := doc.Body().Children()[0]

	v.FocusElement(el)

	assert.Same(t, el, doc.ActiveElement())
	assert.False(t, el.HasAttr(dom.AttrTabIndex), "temporary focus index must be removed")
}

func TestFocusElement_ExplicitTabindexIsKept(t *testing.T) {
	v, doc := newScrollView(t, `<div id="focusable" tabindex="0"></div>`)
	el := doc.Body().Children()[0]

	v.FocusElement(el)

	assert.Same(t, el, doc.ActiveElement())
	assert.Equal(t, "0", el.Attr(dom.AttrTabIndex), "explicit focus index is untouched")
}

func TestFocusElement_NilIsNoOp(t *testing.T) {
	v, doc := newScrollView(t, `<div></div>`)

	v.FocusElement(nil)
	assert.Nil(t, doc.ActiveElement())
}

func TestVisitDirectionMarkers(t *testing.T) {
	v, doc := newScrollView(t, `<div></div>`)
	root := doc.Body()

	v.MarkVisitDirection("forward")
	v.MarkVisitDirection("forward") // idempotent
	assert.Equal(t, "forward", root.Attr(dom.AttrVisitDirection))

	v.UnmarkVisitDirection()
	v.UnmarkVisitDirection()
	assert.False(t, root.HasAttr(dom.AttrVisitDirection))
}

func TestMarkAsPreview_Idempotent(t *testing.T) {
	v, doc := newScrollView(t, `<div></div>`)
	root := doc.Body()

	v.MarkAsPreview(true)
	v.MarkAsPreview(true)
	assert.True(t, root.HasAttr(dom.AttrPreview))
	assert.True(t, v.IsPreview())

	v.MarkAsPreview(false)
	v.MarkAsPreview(false)
	assert.False(t, root.HasAttr(dom.AttrPreview))
	assert.False(t, v.IsPreview())
}
