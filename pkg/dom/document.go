package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree together with the page-lifecycle state a
// browser would track for it: the focused element and the viewport scroll
// position. A Document is not safe for concurrent mutation; callers are
// expected to serialize access the same way they serialize renders.
type Document struct {
	root     *html.Node // the #document node
	active   *html.Node // focused node; nil when nothing holds focus
	viewport *Viewport

	// handles canonicalizes Element wrappers so two lookups of the same
	// node compare equal with ==.
	handles map[*html.Node]*Element
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// ParseFragment parses an HTML string into a Document. Partial markup is
// fine; the parser supplies the html/head/body scaffolding.
func ParseFragment(fragment string) (*Document, error) {
	return Parse(strings.NewReader(fragment))
}

func newDocument(root *html.Node) *Document {
	d := &Document{
		root:    root,
		handles: make(map[*html.Node]*Element),
	}
	d.viewport = &Viewport{doc: d}
	return d
}

// DocumentElement returns the root <html> element.
func (d *Document) DocumentElement() *Element {
	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return d.element(n)
		}
	}
	return nil
}

// Body returns the document's <body> element, or nil for an empty tree.
func (d *Document) Body() *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for n := docEl.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return d.element(n)
		}
	}
	return nil
}

// ActiveElement returns the currently focused element, or nil.
func (d *Document) ActiveElement() *Element {
	if d.active == nil {
		return nil
	}
	return d.element(d.active)
}

// Viewport returns the document's scroll root.
func (d *Document) Viewport() *Viewport {
	return d.viewport
}

// Render serializes the document back to HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the serialized document as a string.
func (d *Document) HTML() (string, error) {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (d *Document) element(n *html.Node) *Element {
	if e, ok := d.handles[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.handles[n] = e
	return e
}

// Viewport is the default scroll root for a Document. It records the last
// scroll request so hosts (and tests) can observe restoration behavior.
type Viewport struct {
	doc    *Document
	x, y   float64
	target *Element
}

// ScrollTo moves the viewport to an absolute position.
func (v *Viewport) ScrollTo(x, y float64) {
	v.x, v.y = x, y
	v.target = nil
}

// Position returns the current scroll offsets.
func (v *Viewport) Position() (x, y float64) {
	return v.x, v.y
}

// Target returns the element last scrolled into view, or nil if the most
// recent scroll was positional.
func (v *Viewport) Target() *Element {
	return v.target
}

func (v *Viewport) scrollToElement(e *Element) {
	v.target = e
}
