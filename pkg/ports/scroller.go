package ports

// Scroller is the target of scroll commands. The page viewport implements
// it; hosts may substitute any scrollable container.
type Scroller interface {
	// ScrollTo moves the scroll root to an absolute position.
	ScrollTo(x, y float64)
}
