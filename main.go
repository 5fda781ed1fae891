package main

import "grammable/cmd/app"

// @title        Grammable API
// @version      1.0
// @description  Share grams and comment on them.
// @BasePath     /
func main() {
	app.GetApp().LetsGo()
}
