package brackets

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	openMark  = "【"
	closeMark = "】"
)

// Span is one protected bracket annotation and the opaque token standing in
// for it.
type Span struct {
	Token string
	Text  string
}

// Extraction is the result of pulling 【…】 spans out of a text. Text holds the
// rewritten string with each span replaced by its token; Spans keeps the
// originals in source order.
type Extraction struct {
	Text  string
	Spans []Span

	byToken map[string]string
}

// Extract replaces every non-nested 【…】 span in s with a token guaranteed not
// to collide with surrounding content, so later trimming can treat each span
// as atomic. An opening bracket with no closing counterpart is left in place
// as ordinary text.
func Extract(s string) *Extraction {
	e := &Extraction{byToken: map[string]string{}}
	run := uuid.NewString()[:8]

	var b strings.Builder
	rest := s
	for i := 0; ; i++ {
		start := strings.Index(rest, openMark)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], closeMark)
		if end < 0 {
			// dangling open bracket, not a span
			b.WriteString(rest)
			break
		}
		span := rest[start : start+end+len(closeMark)]
		token := fmt.Sprintf("\x00%s:%d\x00", run, i)

		b.WriteString(rest[:start])
		b.WriteString(token)
		e.Spans = append(e.Spans, Span{Token: token, Text: span})
		e.byToken[token] = span
		rest = rest[start+end+len(closeMark):]
	}
	e.Text = b.String()
	return e
}

// Restore substitutes the original spans back into s. Tokens already dropped
// from s are simply not restored.
func (e *Extraction) Restore(s string) string {
	for _, sp := range e.Spans {
		s = strings.Replace(s, sp.Token, sp.Text, 1)
	}
	return s
}

// IsToken reports whether s is exactly one of this extraction's tokens.
func (e *Extraction) IsToken(s string) bool {
	_, ok := e.byToken[s]
	return ok
}
