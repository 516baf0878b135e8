package view

// Hooks defines optional callbacks for render observability. Hooks never
// alter control flow; nil callbacks are skipped.
type Hooks struct {
	OnRenderStart     func(renderMethod string)
	OnRenderSuspended func()
	OnRenderResumed   func()
	OnRenderFinished  func(renderMethod string, err error)
}

func (h Hooks) renderStart(method string) {
	if h.OnRenderStart != nil {
		h.OnRenderStart(method)
	}
}

func (h Hooks) renderSuspended() {
	if h.OnRenderSuspended != nil {
		h.OnRenderSuspended()
	}
}

func (h Hooks) renderResumed() {
	if h.OnRenderResumed != nil {
		h.OnRenderResumed()
	}
}

func (h Hooks) renderFinished(method string, err error) {
	if h.OnRenderFinished != nil {
		h.OnRenderFinished(method, err)
	}
}
