package web

import (
	"grammable/internal/models"

	"github.com/a-h/templ"
)

func CommentsNew(page Page, gram *models.GramResponse, message string) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>Add a comment</h1>`)
		hw.errors(page.Errors)
		hw.render(GramCard(gram))
		hw.raw(`<form action="/grams/`)
		hw.id(gram.ID)
		hw.raw(`/comments" method="post"><label for="message">Comment</label><textarea id="message" name="message">`)
		hw.text(message)
		hw.raw(`</textarea><button type="submit">Comment</button></form>`)
	}))
}
