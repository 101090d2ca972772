package helpers

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer emits markup for a component and keeps the first write error, so
// a component body can be a flat list of writes followed by Err.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (w *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// Text writes s escaped; safe in element bodies and quoted attributes.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// URL writes a sanitized, escaped URL for an href or src attribute.
func (w *Writer) URL(s string) {
	w.Text(string(templ.URL(s)))
}

func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}
