package web

func layout(page Page, body func(hw *htmlWriter)) func(hw *htmlWriter) {
	return func(hw *htmlWriter) {
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if page.Title != "" {
			hw.text(page.Title)
			hw.raw(` | `)
		}
		hw.raw(`Grammable</title></head><body><nav><a href="/">Grammable</a>`)
		if page.SignedIn {
			hw.raw(`<a href="/grams/new">New Gram</a><span>`)
			hw.text(page.Email)
			hw.raw(`</span><form action="/users/sign_out" method="post" style="display:inline">`)
			hw.methodField("delete")
			hw.raw(`<button type="submit">Sign out</button></form>`)
		} else {
			hw.raw(`<a href="/users/sign_in">Sign in</a><a href="/users/sign_up">Sign up</a>`)
		}
		hw.raw(`</nav><main>`)
		body(hw)
		hw.raw(`</main></body></html>`)
	}
}
