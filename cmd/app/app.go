package main

import (
	"os"
)

//	@title			Products Board API
//	@version		1.0
//	@description	Представление списка продуктов поверх удалённого API /api/Products
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
