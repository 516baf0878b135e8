// Package view implements the per-page render orchestrator. A View owns
// access to the current page snapshot, drives an externally supplied
// Renderer through a gated, exactly-once render pipeline, and coordinates
// scroll and focus restoration around transitions.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pagelift/pagelift/internal/logging"
	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/ports"
	"github.com/pagelift/pagelift/pkg/snapshot"
)

// View is created once per page context and persists across many render
// cycles. The root element and the tree below it are mutated only between
// render cycles; callers must not invoke Render concurrently on the same
// View — overlapping calls are not detected.
type View struct {
	root       *dom.Element
	delegate   Delegate
	scrollRoot ports.Scroller
	logger     *slog.Logger
	hooks      Hooks

	mu   sync.Mutex
	task *renderTask
}

// Option configures a View.
type Option func(*View)

// WithScrollRoot overrides the target of scroll commands. The default is
// the root element's document viewport.
func WithScrollRoot(s ports.Scroller) Option {
	return func(v *View) {
		v.scrollRoot = s
	}
}

// WithLogger configures a logger for render lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(v *View) {
		v.hooks = hooks
	}
}

// New creates a View over the given root element.
func New(root *dom.Element, delegate Delegate, opts ...Option) *View {
	v := &View{
		root:       root,
		delegate:   delegate,
		scrollRoot: root.Document().Viewport(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Root returns the element the view presides over.
func (v *View) Root() *dom.Element {
	return v.root
}

// Snapshot captures the current page state. It is derived fresh on every
// call; after a successful render it reflects the swapped-in content.
func (v *View) Snapshot() *snapshot.Snapshot {
	return snapshot.New(v.root)
}

// renderTask is the render-in-flight handle. Completion is idempotent so
// the guaranteed-cleanup path can settle it on every exit.
type renderTask struct {
	done chan struct{}
	once sync.Once
}

func (t *renderTask) finish() {
	t.once.Do(func() {
		close(t.done)
	})
}

// RenderInFlight reports whether a render cycle is currently executing.
func (v *View) RenderInFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task != nil
}

// RenderDone returns a channel closed when the in-flight render settles.
// When the view is idle the returned channel is already closed.
func (v *View) RenderDone() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.task != nil {
		return v.task.done
	}
	return closedChan
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (v *View) beginRender() *renderTask {
	t := &renderTask{done: make(chan struct{})}
	v.mu.Lock()
	v.task = t
	v.mu.Unlock()
	return t
}

func (v *View) endRender(t *renderTask) {
	t.finish()
	v.mu.Lock()
	if v.task == t {
		v.task = nil
	}
	v.mu.Unlock()
}

// Render drives one render cycle:
//
//	Idle → (Suspended) → Preparing → Rendering → Finalizing → Idle
//
// If the renderer declines to render but reports the page as stale, the
// view invalidates and returns. Otherwise the delegate is consulted; a
// false answer suspends the pipeline until the delegate fires the resume
// signal or ctx is canceled. Once the pipeline body is entered, the
// finalize sequence — rendered notification, preload notification,
// FinishRendering — runs on success and failure alike, and the
// render-in-flight handle is cleared on every exit path. A Prepare or
// Render error propagates to the caller after finalize; nothing is
// retried or swallowed.
func (v *View) Render(ctx context.Context, renderer Renderer) (err error) {
	if !renderer.ShouldRender() {
		if renderer.WillRender() {
			v.Invalidate(renderer.ReloadReason())
		}
		return nil
	}

	method := renderer.RenderMethod()
	task := v.beginRender()
	v.hooks.renderStart(method)

	var (
		runOnce sync.Once
		runErr  error
		entered bool
	)
	run := func(ctx context.Context) error {
		runOnce.Do(func() {
			entered = true
			v.MarkAsPreview(renderer.IsPreview())
			if prepErr := renderer.PrepareToRender(ctx); prepErr != nil {
				runErr = fmt.Errorf("prepare to render: %w", prepErr)
				return
			}
			if renderErr := renderer.Render(ctx); renderErr != nil {
				runErr = fmt.Errorf("render: %w", renderErr)
			}
		})
		return runErr
	}

	defer func() {
		if entered {
			v.delegate.ViewRenderedSnapshot(v.Snapshot(), renderer.IsPreview(), method)
			v.delegate.PreloadOnLoadLinksForView(v.root)
			renderer.FinishRendering()
		}
		v.endRender(task)
		v.hooks.renderFinished(method, err)
	}()

	gate := newResumeGate()
	opts := RenderOptions{
		Resume:       gate.fire,
		Render:       run,
		RenderMethod: method,
	}
	if !v.delegate.AllowsImmediateRender(v.Snapshot(), opts) {
		v.logger.Debug("render suspended awaiting interception", "render_method", method)
		v.hooks.renderSuspended()
		if waitErr := gate.wait(ctx); waitErr != nil {
			return waitErr
		}
		v.hooks.renderResumed()
		v.logger.Debug("render resumed", "render_method", method)
	}

	return run(ctx)
}

// Invalidate notifies the delegate that the current page state should be
// discarded and a full reload performed.
func (v *View) Invalidate(reason string) {
	v.logger.Debug("view invalidated", "reason", reason)
	v.delegate.ViewInvalidated(reason)
}
