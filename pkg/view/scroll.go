package view

import (
	"net/url"

	"github.com/pagelift/pagelift/pkg/dom"
)

// ScrollToAnchor focuses and scrolls to the element the anchor resolves
// to; if nothing resolves, the scroll root returns to the origin.
func (v *View) ScrollToAnchor(anchor string) {
	if el := v.Snapshot().ElementForAnchor(anchor); el != nil {
		v.FocusElement(el)
		v.ScrollToElement(el)
		return
	}
	v.ScrollToPosition(0, 0)
}

// ScrollToAnchorFromLocation extracts the fragment from a location and
// forwards it to ScrollToAnchor. An unparseable location scrolls to top.
func (v *View) ScrollToAnchorFromLocation(location string) {
	v.ScrollToAnchor(fragmentFromLocation(location))
}

// ScrollToElement brings an element into view via its native behavior.
func (v *View) ScrollToElement(el *dom.Element) {
	el.ScrollIntoView()
}

// ScrollToPosition moves the scroll root to absolute coordinates.
func (v *View) ScrollToPosition(x, y float64) {
	v.scrollRoot.ScrollTo(x, y)
}

// ScrollToTop scrolls the scroll root to the origin.
func (v *View) ScrollToTop() {
	v.ScrollToPosition(0, 0)
}

// FocusElement requests focus on an element. Elements that already carry
// an explicit focus index are focused directly; anything else is made
// temporarily focusable with tabindex="-1", focused, and restored to its
// original attribute state. A nil element is a no-op.
func (v *View) FocusElement(el *dom.Element) {
	if el == nil {
		return
	}
	if el.HasAttr(dom.AttrTabIndex) {
		el.Focus()
		return
	}
	el.SetAttr(dom.AttrTabIndex, "-1")
	el.Focus()
	el.RemoveAttr(dom.AttrTabIndex)
}

// MarkAsPreview toggles the preview marker on the root element. The
// toggle is idempotent and purely presentational.
func (v *View) MarkAsPreview(isPreview bool) {
	if isPreview {
		v.root.SetAttr(dom.AttrPreview, "")
		return
	}
	v.root.RemoveAttr(dom.AttrPreview)
}

// IsPreview reports whether the root currently carries the preview marker.
func (v *View) IsPreview() bool {
	return v.root.HasAttr(dom.AttrPreview)
}

// MarkVisitDirection records the direction of an animated transition on
// the root element.
func (v *View) MarkVisitDirection(direction string) {
	v.root.SetAttr(dom.AttrVisitDirection, direction)
}

// UnmarkVisitDirection clears the visit-direction marker.
func (v *View) UnmarkVisitDirection() {
	v.root.RemoveAttr(dom.AttrVisitDirection)
}

func fragmentFromLocation(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return u.Fragment
}
