package main

import (
	appfx "github.com/Amanar-Marouane/card-watchdog/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
