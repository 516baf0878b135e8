package view

import (
	"context"

	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/snapshot"
)

// Renderer is the per-cycle strategy that performs the actual content
// swap. The view drives its lifecycle but never implements it: prepare
// strictly precedes render, and FinishRendering is called exactly once
// after render settles.
type Renderer interface {
	// ShouldRender gates whether any render work happens at all.
	ShouldRender() bool

	// WillRender indicates, when ShouldRender is false, that the current
	// page state is stale and a full reload is warranted.
	WillRender() bool

	// ReloadReason is passed verbatim to the delegate on invalidation.
	ReloadReason() string

	// IsPreview reports whether this cycle renders a preview of the page.
	IsPreview() bool

	// RenderMethod names the swap strategy; it is passed through to
	// delegate callbacks unchanged.
	RenderMethod() string

	// PrepareToRender performs any work that must complete before Render.
	PrepareToRender(ctx context.Context) error

	// Render performs the content transition.
	Render(ctx context.Context) error

	// FinishRendering releases per-cycle resources. Called exactly once.
	FinishRendering()
}

// RenderOptions accompanies the delegate's interception decision.
type RenderOptions struct {
	// Resume releases a suspended render pipeline. It is a one-shot
	// signal; calling it more than once is harmless.
	Resume func()

	// Render is the pipeline continuation (prepare + render). The view
	// invokes it once the interception gate opens; a delegate that calls
	// it early collapses into the same single execution.
	Render func(ctx context.Context) error

	// RenderMethod is the renderer's declared swap strategy.
	RenderMethod string
}

// Delegate is the navigation controller observing the view. It gates
// render start and receives lifecycle notifications.
type Delegate interface {
	// AllowsImmediateRender decides whether the pipeline may proceed now.
	// Returning false suspends the pipeline until opts.Resume is called;
	// no timeout is imposed, so a delegate that never resumes leaves the
	// pipeline pending until the caller's context is canceled.
	AllowsImmediateRender(snap *snapshot.Snapshot, opts RenderOptions) bool

	// ViewRenderedSnapshot is notified when a render cycle finalizes.
	ViewRenderedSnapshot(snap *snapshot.Snapshot, isPreview bool, renderMethod string)

	// PreloadOnLoadLinksForView is notified after rendering so eager
	// link preloading can run against the fresh tree.
	PreloadOnLoadLinksForView(root *dom.Element)

	// ViewInvalidated signals that the current page state should be
	// discarded and reloaded.
	ViewInvalidated(reason string)
}
