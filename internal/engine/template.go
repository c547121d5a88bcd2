package engine

import "strings"

// Transform produces the slot value inserted into a template from the raw
// current field value. The title path uses it to trim before insertion.
type Transform func(current string, fields Fields) string

// applyTemplate fills format's slot with current. If current already starts
// with the template's rendered prefix and ends with its rendered suffix, the
// template was applied on an earlier run and current is returned untouched,
// so regenerating against already-updated marketplace data never nests a
// banner twice. An empty format is a passthrough.
func applyTemplate(current, format, slot string, fields Fields, transform Transform) string {
	if format == "" {
		return current
	}

	prefix, suffix, _ := strings.Cut(format, slotMarker(slot))
	prefix = render(prefix, fields)
	suffix = render(suffix, fields)
	if len(current) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(current, prefix) && strings.HasSuffix(current, suffix) {
		return current
	}

	if transform != nil {
		return transform(current, fields)
	}
	return renderWith(format, slot, current, fields)
}
