package event

// Mouse events
const (
	Click       = "click"
	DblClick    = "dblclick"
	MouseDown   = "mousedown"
	MouseUp     = "mouseup"
	MouseMove   = "mousemove"
	MouseEnter  = "mouseenter"
	MouseLeave  = "mouseleave"
	MouseOver   = "mouseover"
	MouseOut    = "mouseout"
	ContextMenu = "contextmenu"
	Wheel       = "wheel"
)

// Keyboard events
const (
	KeyDown  = "keydown"
	KeyUp    = "keyup"
	KeyPress = "keypress" // deprecated, still dispatched
)

// Form events
const (
	Input    = "input"
	Change   = "change"
	Submit   = "submit"
	Focus    = "focus"
	Blur     = "blur"
	FocusIn  = "focusin"
	FocusOut = "focusout"
	Select   = "select"
	Invalid  = "invalid"
	Reset    = "reset"
)

// Touch and pointer events
const (
	TouchStart    = "touchstart"
	TouchMove     = "touchmove"
	TouchEnd      = "touchend"
	TouchCancel   = "touchcancel"
	PointerDown   = "pointerdown"
	PointerUp     = "pointerup"
	PointerMove   = "pointermove"
	PointerEnter  = "pointerenter"
	PointerLeave  = "pointerleave"
	PointerCancel = "pointercancel"
)

// Document and window events
const (
	DOMContentLoaded = "DOMContentLoaded"
	Load             = "load"
	Resize           = "resize"
	Scroll           = "scroll"
)

// All is the Off spec that removes every registration of an element.
const All = "all"

// Shortcuts lists the event names that get a collection shortcut method.
var Shortcuts = []string{
	Click, DblClick, MouseDown, MouseUp, MouseMove, MouseEnter, MouseLeave,
	MouseOver, MouseOut, ContextMenu, KeyDown, KeyUp, KeyPress,
	Input, Change, Submit, Focus, Blur, FocusIn, FocusOut, Select, Reset,
	TouchStart, TouchMove, TouchEnd, TouchCancel, Resize, Scroll,
}
