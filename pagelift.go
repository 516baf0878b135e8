package pagelift

import (
	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/snapshot"
	"github.com/pagelift/pagelift/pkg/view"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "0.3.0"

// Re-exports so simple hosts only import the root package.
type (
	// View is the per-page render orchestrator.
	View = view.View
	// Renderer performs the content swap for one render cycle.
	Renderer = view.Renderer
	// Delegate gates render start and observes lifecycle events.
	Delegate = view.Delegate
	// RenderOptions accompanies the delegate's interception decision.
	RenderOptions = view.RenderOptions
	// Snapshot is an immutable capture of a subtree.
	Snapshot = snapshot.Snapshot
)

// NewView creates a View over a subtree root.
func NewView(root *dom.Element, delegate Delegate, opts ...view.Option) *View {
	return view.New(root, delegate, opts...)
}

// NewSnapshot captures a subtree rooted at the given element.
func NewSnapshot(root *dom.Element) *Snapshot {
	return snapshot.New(root)
}
