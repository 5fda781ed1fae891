package web

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Page carries what every layout needs besides the page body.
type Page struct {
	Title  string
	Errors []error

	SignedIn bool
	UserID   uint
	Email    string
}

// htmlWriter stops writing after the first error so components can stay linear.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(body func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{ctx: ctx, w: w}
		body(hw)
		return hw.err
	})
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) url(s string) {
	hw.text(string(templ.URL(s)))
}

func (hw *htmlWriter) id(id uint) {
	hw.raw(strconv.FormatUint(uint64(id), 10))
}

func (hw *htmlWriter) time(t time.Time) {
	hw.raw(`<time datetime="`)
	hw.raw(t.UTC().Format(time.RFC3339))
	hw.raw(`">`)
	hw.text(t.Format("Jan 2, 2006 15:04"))
	hw.raw(`</time>`)
}

func (hw *htmlWriter) render(c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

func (hw *htmlWriter) errors(list []error) {
	if len(list) == 0 {
		return
	}
	hw.raw(`<ul class="errors">`)
	for _, err := range list {
		hw.raw(`<li>`)
		hw.text(err.Error())
		hw.raw(`</li>`)
	}
	hw.raw(`</ul>`)
}

func (hw *htmlWriter) methodField(method string) {
	hw.raw(`<input type="hidden" name="_method" value="`)
	hw.text(method)
	hw.raw(`">`)
}
