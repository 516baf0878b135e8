package dom

// Attribute markers recognized by the transition pipeline. They are plain
// document attributes, not a wire format.
const (
	// AttrPermanent, combined with an id, marks an element that must
	// survive a page transition.
	AttrPermanent = "data-permanent"
	// AttrPreview is toggled on the root element during preview renders.
	AttrPreview = "data-preview"
	// AttrVisitDirection is set around animated transitions.
	AttrVisitDirection = "data-visit-direction"
	// AttrAutofocus marks an element eligible for automatic focus.
	AttrAutofocus = "autofocus"
	// AttrTabIndex is the focus-index attribute.
	AttrTabIndex = "tabindex"
)
