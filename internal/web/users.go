package web

import "github.com/a-h/templ"

func SignIn(page Page, email string) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>Sign in</h1>`)
		hw.errors(page.Errors)
		hw.raw(`<form action="/users/sign_in" method="post"><label for="email">Email</label>`)
		hw.raw(`<input id="email" type="email" name="email" value="`)
		hw.text(email)
		hw.raw(`"><label for="password">Password</label><input id="password" type="password" name="password">`)
		hw.raw(`<button type="submit">Sign in</button></form><a href="/users/sign_up">Sign up</a>`)
	}))
}

func SignUp(page Page, email string) templ.Component {
	return component(layout(page, func(hw *htmlWriter) {
		hw.raw(`<h1>Sign up</h1>`)
		hw.errors(page.Errors)
		hw.raw(`<form action="/users" method="post"><label for="email">Email</label>`)
		hw.raw(`<input id="email" type="email" name="email" value="`)
		hw.text(email)
		hw.raw(`"><label for="password">Password</label><input id="password" type="password" name="password">`)
		hw.raw(`<label for="password_confirmation">Password confirmation</label>`)
		hw.raw(`<input id="password_confirmation" type="password" name="password_confirmation">`)
		hw.raw(`<button type="submit">Sign up</button></form><a href="/users/sign_in">Sign in</a>`)
	}))
}
