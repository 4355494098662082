package main

import (
	"MedicineReminder/internal/bootstrap"
	pkg "MedicineReminder/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.AppModules,
	)

	app.Run()
}
