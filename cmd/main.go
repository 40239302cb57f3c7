package main

import (
	"ordersvc/internal/app"
	"ordersvc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
