package event

import "strings"

// Name is one entry of an event spec: an event name and its namespace.
// Either part may be empty; ".ns" yields Name{Namespace: "ns"}.
type Name struct {
	Event     string
	Namespace string
}

// String renders n back to its "event.ns" form.
func (n Name) String() string {
	if n.Namespace == "" {
		return n.Event
	}
	return n.Event + "." + n.Namespace
}

// ParseSpec splits a space-separated event spec such as "click.menu keyup"
// into its names. Duplicate entries are kept once.
func ParseSpec(spec string) []Name {
	fields := strings.Fields(spec)
	out := make([]Name, 0, len(fields))
	seen := make(map[Name]struct{}, len(fields))
	for _, f := range fields {
		ev, ns, _ := strings.Cut(f, ".")
		n := Name{Event: ev, Namespace: ns}
		if n.Event == "" && n.Namespace == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
