package web

import (
	"fmt"
	"grammable/internal/models"

	"github.com/a-h/templ"
)

func GramCard(gram *models.GramResponse) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<article class="gram" id="gram-`)
		hw.id(gram.ID)
		hw.raw(`"><header><strong>`)
		if gram.User != nil {
			hw.text(gram.User.Email)
		}
		hw.raw(`</strong> `)
		hw.time(gram.CreatedAt)
		hw.raw(`</header>`)
		if gram.Picture != nil && *gram.Picture != "" {
			hw.raw(`<img src="`)
			hw.url(*gram.Picture)
			hw.raw(`" alt="picture for gram `)
			hw.id(gram.ID)
			hw.raw(`">`)
		}
		hw.raw(`<p>`)
		hw.text(gram.Message)
		hw.raw(`</p><ul class="comments">`)
		for _, comment := range gram.Comments {
			hw.raw(`<li><strong>`)
			if comment.User != nil {
				hw.text(comment.User.Email)
			}
			hw.raw(`</strong> `)
			hw.text(comment.Message)
			hw.raw(`</li>`)
		}
		hw.raw(`</ul></article>`)
	})
}

// GramsIndex lists grams newest first. A zero prevPage or nextPage hides that link.
func GramsIndex(page Page, grams []*models.GramResponse, prevPage, nextPage, size int) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.errors(page.Errors)
		hw.raw(`<section id="grams">`)
		if len(grams) == 0 {
			hw.raw(`<p>No grams yet.</p>`)
		}
		for _, gram := range grams {
			hw.render(GramCard(gram))
			hw.raw(`<p><a href="/grams/`)
			hw.id(gram.ID)
			hw.raw(`">Show</a>`)
			if page.SignedIn {
				hw.raw(`<a href="/grams/`)
				hw.id(gram.ID)
				hw.raw(`/comments/new">Comment</a>`)
			}
			hw.raw(`</p>`)
		}
		hw.raw(`</section><footer>`)
		if prevPage > 0 {
			hw.raw(`<a href="`)
			hw.text(fmt.Sprintf("/grams?page=%d&size=%d", prevPage, size))
			hw.raw(`">Newer</a>`)
		}
		if nextPage > 0 {
			hw.raw(`<a href="`)
			hw.text(fmt.Sprintf("/grams?page=%d&size=%d", nextPage, size))
			hw.raw(`">Older</a>`)
		}
		hw.raw(`</footer>`)
	}))
}

func GramsShow(page Page, gram *models.GramResponse) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.render(GramCard(gram))
		if gram.User != nil && page.SignedIn && gram.User.ID == page.UserID {
			hw.raw(`<a href="/grams/`)
			hw.id(gram.ID)
			hw.raw(`/edit">Edit</a><form action="/grams/`)
			hw.id(gram.ID)
			hw.raw(`" method="post" style="display:inline">`)
			hw.methodField("delete")
			hw.raw(`<button type="submit">Destroy</button></form>`)
		}
		if page.SignedIn {
			hw.raw(`<form action="/grams/`)
			hw.id(gram.ID)
			hw.raw(`/comments" method="post"><textarea name="message" placeholder="Add a comment"></textarea>`)
			hw.raw(`<button type="submit">Comment</button></form>`)
		}
	}))
}

func GramsNew(page Page, message string) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>New Gram</h1>`)
		hw.errors(page.Errors)
		hw.raw(`<form action="/grams" method="post" enctype="multipart/form-data">`)
		hw.raw(`<label for="message">Message</label><textarea id="message" name="message">`)
		hw.text(message)
		hw.raw(`</textarea><label for="picture">Picture</label>`)
		hw.raw(`<input id="picture" type="file" name="picture" accept="image/*">`)
		hw.raw(`<button type="submit">Create</button></form>`)
	}))
}

func GramsEdit(page Page, gram *models.GramResponse, message string) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>Edit Gram</h1>`)
		hw.errors(page.Errors)
		hw.raw(`<form action="/grams/`)
		hw.id(gram.ID)
		hw.raw(`" method="post">`)
		hw.methodField("patch")
		hw.raw(`<label for="message">Message</label><textarea id="message" name="message">`)
		hw.text(message)
		hw.raw(`</textarea><button type="submit">Update</button></form>`)
	}))
}
