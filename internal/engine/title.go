package engine

import (
	"strings"
	"unicode"

	"github.com/wosamar/rakuten-tools/internal/brackets"
	"github.com/wosamar/rakuten-tools/internal/textwidth"
)

// DefaultMaxTitleWidth is the marketplace limit for item titles, in
// half-width units.
const DefaultMaxTitleWidth = 255

// TitleComposer builds a campaign title from a format string, trimming the
// original title from the end until the composed result fits MaxWidth.
// Bracketed 【…】 annotations are kept whole or dropped whole, never cut in
// the middle.
type TitleComposer struct {
	Format   string
	MaxWidth int
}

// Compose substitutes a trimmed originalTitle into the composer's format.
// When even the empty insertion leaves the frame over budget, the frame alone
// is returned rather than an error; a banner with no room for the title is
// still preferable to aborting a bulk run.
func (c TitleComposer) Compose(originalTitle string, fields Fields) string {
	maxWidth := c.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxTitleWidth
	}

	frame := renderWith(c.Format, FieldOriginalTitle, "", fields)
	budget := maxWidth - textwidth.Width(frame)
	if budget < 0 {
		budget = 0
	}

	// tokenizing collapses whitespace runs, so only trim when over budget
	title := padBrackets(originalTitle)
	if textwidth.Width(title) > budget {
		ext := brackets.Extract(title)
		tokens := strings.Fields(ext.Text)
		for len(tokens) > 0 && textwidth.Width(ext.Restore(strings.Join(tokens, " "))) > budget {
			tokens = dropLastPlain(tokens, ext)
		}
		title = ext.Restore(strings.Join(tokens, " "))
	}
	return renderWith(c.Format, FieldOriginalTitle, title, fields)
}

// padBrackets inserts a space before an opening bracket that directly follows
// non-space text, so trimming cannot weld a word onto an annotation.
func padBrackets(s string) string {
	var b strings.Builder
	prev := rune(0)
	for i, r := range s {
		if r == '【' && i > 0 && !unicode.IsSpace(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// dropLastPlain removes the last token that is not a protected bracket span.
// If only spans remain, the literal last one goes anyway so the trim loop
// always terminates.
func dropLastPlain(tokens []string, ext *brackets.Extraction) []string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !ext.IsToken(tokens[i]) {
			return append(tokens[:i], tokens[i+1:]...)
		}
	}
	return tokens[:len(tokens)-1]
}
