package main

import (
	"github.com/searchktools/coroserver/app"
	"github.com/searchktools/coroserver/config"
	"github.com/searchktools/coroserver/core/http"
)

func main() {
	cfg := config.New()
	application := app.New(cfg)

	engine := application.Engine()

	engine.GET("/", func(req *http.Request, resp *http.Response) {
		resp.Status = 200
		resp.SetBodyString("Welcome to coroserver!")
	})

	engine.GET("/api/users/:id", func(req *http.Request, resp *http.Response) {
		id, _ := req.Param("id")
		resp.Status = 200
		resp.Headers.SetString("Content-Type", "application/json")
		resp.SetBodyString(`{"user_id":"` + id.String() + `"}`)
	})

	application.Run()
}
