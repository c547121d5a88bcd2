package engine

import "strings"

// Substitution fields recognized in templates. A template references a field
// as {name}; names outside this set are left verbatim.
const (
	FieldOriginalTitle = "original_title"
	FieldOriginalHTML  = "original_html"
	FieldPointRate     = "point_rate"
	FieldCampaignCode  = "campaign_code"
)

// Fields carries the named values substituted into a template, besides the
// insertion slot itself.
type Fields map[string]string

// render substitutes every {name} marker in a single pass over format.
// Substituted values are never re-scanned, so a marker occurring literally
// inside product content survives verbatim.
func render(format string, fields Fields) string {
	if len(fields) == 0 {
		return format
	}
	pairs := make([]string, 0, len(fields)*2)
	for k, v := range fields {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(format)
}

// renderWith renders format with fields plus the slot field set to value.
func renderWith(format, slot, value string, fields Fields) string {
	all := make(Fields, len(fields)+1)
	for k, v := range fields {
		all[k] = v
	}
	all[slot] = value
	return render(format, all)
}

func slotMarker(slot string) string { return "{" + slot + "}" }
