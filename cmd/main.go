package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mbliznikova/check-in-backend/config"
	"github.com/mbliznikova/check-in-backend/database"
	"github.com/mbliznikova/check-in-backend/jobs"
	"github.com/mbliznikova/check-in-backend/routes"
)

func main() {
	cfg := config.Load()

	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	jobs.Start(database.DB)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
