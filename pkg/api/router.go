package api

import (
	"net/http"

	"sheetstep/pkg/sheets"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(svc sheets.Service) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, NewServer(svc))
}

func applyRoutes(r chi.Router, s *Server) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", getHealth)
		r.Post("/v1/steps/run", s.runStep)
	})

	return r
}
