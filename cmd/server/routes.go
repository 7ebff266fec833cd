package main

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/api"
)

func newRouter(svc ossgate.Service) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	app.RoutesHealthz(r)
	app.RoutesHealthzReady(r)

	r.Mount("/", api.NewOSSHandler(svc).Routes())
	return r
}
