package main

import "github.com/ataousCode/agro-backend/internal/app"

// @title           AgriPlant API
// @version         1.0
// @description     Agricultural marketplace backend: catalog, orders, cultivation guides and disease library.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	app.Run()
}
