package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) element(tag, text string) {
	h.raw("<" + tag + ">")
	h.text(text)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
