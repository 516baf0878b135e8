package http

import (
	"context"
	"errors"

	"golang.org/x/net/html"

	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/snapshot"
)

// pageRenderer is the server-side swap strategy: it replaces the current
// body's children with the incoming document's body children, carrying
// matched permanent elements over unchanged.
type pageRenderer struct {
	current  *dom.Element
	incoming *dom.Document
	preview  bool
	method   string

	permanent snapshot.PermanentElementMap
	finished  bool
}

func newPageRenderer(current *dom.Element, incoming *dom.Document, opts visitOptions) *pageRenderer {
	method := opts.RenderMethod
	if method == "" {
		method = "replace"
	}
	return &pageRenderer{
		current:  current,
		incoming: incoming,
		preview:  opts.Preview,
		method:   method,
	}
}

func (r *pageRenderer) ShouldRender() bool {
	return r.current != nil && r.incoming.Body() != nil
}

func (r *pageRenderer) WillRender() bool {
	return true
}

func (r *pageRenderer) ReloadReason() string {
	return "page_incompatible"
}

func (r *pageRenderer) IsPreview() bool {
	return r.preview
}

func (r *pageRenderer) RenderMethod() string {
	return r.method
}

// PrepareToRender reconciles the two captures: the identity map built here
// decides which current elements survive the swap.
func (r *pageRenderer) PrepareToRender(ctx context.Context) error {
	incomingBody := r.incoming.Body()
	if incomingBody == nil {
		return errors.New("incoming document has no body")
	}
	r.permanent = snapshot.New(r.current).PermanentElementMapFor(snapshot.New(incomingBody))
	return nil
}

func (r *pageRenderer) Render(ctx context.Context) error {
	incomingBody := r.incoming.Body()

	// Keep the current permanent elements alive by planting them in the
	// incoming tree before the swap.
	for _, pair := range r.permanent {
		pair.Incoming.ReplaceWith(pair.Current.Node())
	}

	var children []*html.Node
	for n := incomingBody.Node().FirstChild; n != nil; n = n.NextSibling {
		children = append(children, n)
	}

	r.current.RemoveChildren()
	for _, n := range children {
		r.current.AppendChild(n)
	}
	return nil
}

func (r *pageRenderer) FinishRendering() {
	r.finished = true
	r.permanent = nil
	r.incoming = nil
}
