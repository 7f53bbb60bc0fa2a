// Package dom is the host DOM that vquery collections operate on.
//
// Documents are golang.org/x/net/html node trees. On top of the bare tree
// this package supplies what a browser would otherwise provide:
//
//   - a synthetic window node that sits above the document in the event path
//   - CSS selector matching and querySelectorAll (via cascadia)
//   - layout-free visibility checks for :visible and :hidden
//   - native event listeners with capture and bubble phases
//   - a "ready" queue released by MarkReady
//
// # Event Path
//
// DispatchEvent walks target -> parents -> document -> window. Listeners
// registered with Capture run on the way down; the rest run on the way up
// when the event bubbles. StopPropagation ends the walk after the current
// node; StopImmediatePropagation ends it at once.
package dom
