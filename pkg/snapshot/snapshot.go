// Package snapshot captures the state of a document subtree at one instant.
//
// A Snapshot never mutates the tree it wraps and caches nothing: every
// property is derived from the live tree on access. Two snapshots taken
// around a transition can be reconciled into a permanent-element identity
// map, which drives element preservation during a render.
package snapshot

import (
	"github.com/pagelift/pagelift/pkg/dom"
)

// Snapshot is an immutable capture of a subtree rooted at a single
// element. The root is aliased, not owned; its lifecycle belongs to the
// document.
type Snapshot struct {
	root *dom.Element
}

// New wraps a subtree root. The caller keeps ownership of the tree.
func New(root *dom.Element) *Snapshot {
	return &Snapshot{root: root}
}

// Root returns the captured subtree's root element.
func (s *Snapshot) Root() *dom.Element {
	return s.root
}

// HasAnchor reports whether the subtree contains a target for the anchor.
// An empty anchor is absence, not an error.
func (s *Snapshot) HasAnchor(anchor string) bool {
	return s.ElementForAnchor(anchor) != nil
}

// ElementForAnchor resolves an anchor to an element: the first descendant
// whose id equals the anchor wins; failing that, the first <a> named with
// that value. Resolution compares attribute values directly rather than
// building a query string, so anchors containing quotes or other selector
// metacharacters resolve safely. Returns nil for an empty anchor or when
// nothing matches.
func (s *Snapshot) ElementForAnchor(anchor string) *dom.Element {
	if anchor == "" {
		return nil
	}
	var named *dom.Element
	for _, el := range s.root.Descendants() {
		if el.ID() == anchor {
			return el
		}
		if named == nil && el.AnchorName() == anchor {
			named = el
		}
	}
	return named
}

// Children returns the root's direct element children as they exist right
// now. The returned slice is decoupled from later tree mutation.
func (s *Snapshot) Children() []*dom.Element {
	return s.root.Children()
}

// IsConnected reports whether the root is still attached to a live
// document.
func (s *Snapshot) IsConnected() bool {
	return s.root.IsConnected()
}

// ActiveElement returns the document's currently focused element, or nil.
func (s *Snapshot) ActiveElement() *dom.Element {
	return s.root.Document().ActiveElement()
}

// FirstAutofocusableElement returns the first descendant that carries the
// autofocus marker and is actually focusable (visible, not disabled), or
// nil when none qualifies.
func (s *Snapshot) FirstAutofocusableElement() *dom.Element {
	for _, el := range s.root.Descendants() {
		if !el.HasAttr(dom.AttrAutofocus) {
			continue
		}
		if el.IsVisible() && !el.IsDisabled() {
			return el
		}
	}
	return nil
}

// PermanentElements returns every descendant carrying both an id and the
// permanent marker, in document order. Identifiers are assumed unique
// within one snapshot; with duplicates, the first occurrence wins.
func (s *Snapshot) PermanentElements() []*dom.Element {
	var out []*dom.Element
	for _, el := range s.root.Descendants() {
		if el.ID() != "" && el.HasAttr(dom.AttrPermanent) {
			out = append(out, el)
		}
	}
	return out
}

// PermanentElementByID returns the permanent element with the given id,
// or nil.
func (s *Snapshot) PermanentElementByID(id string) *dom.Element {
	if id == "" {
		return nil
	}
	for _, el := range s.root.Descendants() {
		if el.ID() == id && el.HasAttr(dom.AttrPermanent) {
			return el
		}
	}
	return nil
}

// ElementPair holds the two sides of a matched permanent element.
type ElementPair struct {
	Current  *dom.Element
	Incoming *dom.Element
}

// PermanentElementMap matches permanent elements across two snapshots by
// identifier.
type PermanentElementMap map[string]ElementPair

// PermanentElementMapFor builds the identity map between this snapshot
// (current) and another (incoming). Identifiers present on only one side
// are excluded. The map is computed fresh on every call.
func (s *Snapshot) PermanentElementMapFor(other *Snapshot) PermanentElementMap {
	m := make(PermanentElementMap)
	for _, current := range s.PermanentElements() {
		id := current.ID()
		if _, seen := m[id]; seen {
			continue
		}
		if incoming := other.PermanentElementByID(id); incoming != nil {
			m[id] = ElementPair{Current: current, Incoming: incoming}
		}
	}
	return m
}
