package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on a single element node within a Document. Handles
// are canonical per document: looking up the same node twice yields the
// same *Element.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node exposes the underlying parse-tree node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	return e.Attr("id")
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even if empty.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != name {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// Children returns the direct element children, built fresh on each call.
func (e *Element) Children() []*Element {
	var children []*Element
	for n := e.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			children = append(children, e.doc.element(n))
		}
	}
	return children
}

// Descendants returns every element below this one in document order,
// excluding the element itself.
func (e *Element) Descendants() []*Element {
	var out []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, e.doc.element(c))
			}
			walk(c)
		}
	}
	walk(e.node)
	return out
}

// IsConnected reports whether the element is still attached to its
// document's tree.
func (e *Element) IsConnected() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Focus makes this element the document's active element.
func (e *Element) Focus() {
	e.doc.active = e.node
}

// Blur clears focus if this element currently holds it.
func (e *Element) Blur() {
	if e.doc.active == e.node {
		e.doc.active = nil
	}
}

// ScrollIntoView asks the document's viewport to bring the element into
// view.
func (e *Element) ScrollIntoView() {
	e.doc.viewport.scrollToElement(e)
}

// IsVisible reports whether neither the element nor any ancestor carries
// the hidden attribute.
func (e *Element) IsVisible() bool {
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		for _, a := range n.Attr {
			if a.Key == "hidden" {
				return false
			}
		}
	}
	return true
}

// IsDisabled reports whether the element carries the disabled attribute.
func (e *Element) IsDisabled() bool {
	return e.HasAttr("disabled")
}

// AnchorName returns the name attribute for <a> elements, or "".
func (e *Element) AnchorName() string {
	if e.node.DataAtom != atom.A {
		return ""
	}
	return e.Attr("name")
}

// AppendChild detaches n from any current parent and appends it to this
// element.
func (e *Element) AppendChild(n *html.Node) {
	detach(n)
	e.node.AppendChild(n)
}

// RemoveChildren drops every child node, element or not.
func (e *Element) RemoveChildren() {
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
}

// ReplaceWith swaps this element for n in its parent's child list. The
// element becomes disconnected.
func (e *Element) ReplaceWith(n *html.Node) {
	parent := e.node.Parent
	if parent == nil {
		return
	}
	detach(n)
	parent.InsertBefore(n, e.node)
	parent.RemoveChild(e.node)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
