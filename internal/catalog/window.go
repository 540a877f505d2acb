package catalog

// Window is the prefix of a list shown on the home grid.
type Window struct {
	Shown int // items visible, at most Total
	Total int
	Step  int
}

// NewWindow shows the first requested items of total, growing in steps of step.
// A request below step (or missing) shows step items.
func NewWindow(total, requested, step int) Window {
	if step <= 0 {
		step = DefaultWindowSize
	}
	if requested < step {
		requested = step
	}
	return Window{Shown: min(requested, max(total, 0)), Total: max(total, 0), Step: step}
}

// HasMore reports whether "Load More" should be offered.
func (w Window) HasMore() bool { return w.Shown < w.Total }

// NextShow is the item count requested by the "Load More" link.
func (w Window) NextShow() int { return w.Shown + w.Step }

// Take returns the visible prefix of items.
func Take[T any](items []T, w Window) []T {
	return items[:min(w.Shown, len(items))]
}
