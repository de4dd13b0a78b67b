package widget

// Component renders props to a string.
type Component[P any] func(props P) string

// Admitter decides at render time whether input widgets may appear.
type Admitter interface {
	IsInputAllowed() bool
}

// Mount returns a component that renders target when gate admits input and
// fallback otherwise. A nil fallback renders nothing. Props reach either
// branch unchanged.
func Mount[P any](gate Admitter, target, fallback Component[P]) Component[P] {
	return func(props P) string {
		if gate.IsInputAllowed() {
			return target(props)
		}
		if fallback == nil {
			return ""
		}
		return fallback(props)
	}
}
