package pagelift_test

import (
	"context"
	"fmt"

	"github.com/pagelift/pagelift"
	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/snapshot"
	"github.com/pagelift/pagelift/pkg/view"
)

// exampleDelegate allows every render immediately and reports completions.
type exampleDelegate struct{}

func (exampleDelegate) AllowsImmediateRender(*snapshot.Snapshot, view.RenderOptions) bool {
	return true
}

func (exampleDelegate) ViewRenderedSnapshot(snap *snapshot.Snapshot, isPreview bool, renderMethod string) {
	fmt.Println("rendered via", renderMethod)
}

func (exampleDelegate) PreloadOnLoadLinksForView(*dom.Element) {}

func (exampleDelegate) ViewInvalidated(reason string) {}

// exampleRenderer swaps in a static fragment.
type exampleRenderer struct {
	target *dom.Element
}

func (r *exampleRenderer) ShouldRender() bool   { return true }
func (r *exampleRenderer) WillRender() bool     { return false }
func (r *exampleRenderer) ReloadReason() string { return "" }
func (r *exampleRenderer) IsPreview() bool      { return false }
func (r *exampleRenderer) RenderMethod() string { return "replace" }

func (r *exampleRenderer) PrepareToRender(context.Context) error { return nil }

func (r *exampleRenderer) Render(context.Context) error {
	incoming, err := dom.ParseFragment(`<h1 id="greeting">Hello</h1>`)
	if err != nil {
		return err
	}
	r.target.RemoveChildren()
	r.target.AppendChild(incoming.Body().Children()[0].Node())
	return nil
}

func (r *exampleRenderer) FinishRendering() {}

func Example_render() {
	doc, err := dom.ParseFragment(`<main id="app"></main>`)
	if err != nil {
		panic(err)
	}

	v := pagelift.NewView(doc.Body(), exampleDelegate{})
	if err := v.Render(context.Background(), &exampleRenderer{target: doc.Body()}); err != nil {
		panic(err)
	}

	fmt.Println(v.Snapshot().HasAnchor("greeting"))
	// Output:
	// rendered via replace
	// true
}
