/*
Package pagelift coordinates client-visible page transitions for
server-driven UIs: when a new page fragment is ready, it runs an
interception handshake with a navigation delegate, drives an asynchronous
render strategy to completion exactly once, preserves elements marked as
permanent across the swap, and restores scroll and focus state.

# Concept

The core is a small state machine. A View presides over one page context
and persists across many render cycles; a Snapshot is an immutable capture
of a subtree used to resolve anchors and match permanent elements across a
transition. The host supplies two collaborators per cycle: a Renderer that
performs the actual content swap, and a Delegate that decides whether a
render may proceed immediately and observes its lifecycle. This hexagonal
split lets pagelift sit behind any interface: an HTTP API, a WebSocket
bridge, or an embedded host.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/pagelift/pagelift"
		"github.com/pagelift/pagelift/pkg/dom"
	)

	func main() {
		doc, err := dom.ParseFragment(`<main id="app"></main>`)
		if err != nil {
			log.Fatal(err)
		}

		// The delegate gates render start; the renderer swaps content.
		v := pagelift.NewView(doc.Body(), myDelegate{})

		if err := v.Render(context.Background(), myRenderer{}); err != nil {
			log.Fatal(err)
		}

		// After a transition, restore the reader's place.
		v.ScrollToAnchorFromLocation("/articles/42#comments")
	}

The render pipeline is strictly ordered: prepare precedes render, render
precedes finalize, and the render-in-flight handle is cleared on every
exit path. A delegate that suspends a render must eventually call the
supplied resume signal; the caller's context bounds the wait.
*/
package pagelift
