package web

import (
	"strconv"

	"github.com/a-h/templ"
)

func ErrorPage(page Page, status int) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>`)
		hw.raw(strconv.Itoa(status))
		hw.raw(` `)
		hw.text(page.Title)
		hw.raw(`</h1>`)
		hw.errors(page.Errors)
		hw.raw(`<a href="/">Back to grams</a>`)
	}))
}
