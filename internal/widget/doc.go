// Package widget holds the input-related building blocks shared by screens.
//
// GuardedInput wraps a bubbles text input and refuses every route to focus
// except an explicit Focus call: AutoFocus options are discarded, mounting
// does not focus, and SetNativeProps drops any focus its callback acquires.
// Mount and Unmount emit trace events labelled by placeholder, test id or
// accessibility label, in that order of preference.
//
// Mount builds a stateless component that renders its target only while an
// Admitter (normally a gate.Gate) allows input, and a fallback otherwise.
package widget
