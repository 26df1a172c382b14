package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pooltrack/tournament-api/handlers"
	"github.com/pooltrack/tournament-api/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	mappingHandler *handlers.MappingHandler,
	metricsService *metrics.Service,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(metricsService.Middleware)

	router.Route("/player", func(r chi.Router) {
		r.Post("/create", playerHandler.Create)
		r.Get("/get", playerHandler.List)
		r.Post("/update", playerHandler.Update)
		r.Post("/delete", playerHandler.Delete)
	})

	router.Route("/tournament", func(r chi.Router) {
		r.Post("/create", tournamentHandler.Create)
		r.Get("/get", tournamentHandler.List)
		r.Post("/update", tournamentHandler.Update)
		r.Post("/delete", tournamentHandler.Delete)
	})

	router.Route("/mapping", func(r chi.Router) {
		r.Post("/assign", mappingHandler.Assign)
		r.Post("/remove", mappingHandler.Remove)
	})

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Handle("/metrics", metrics.NewMetricsHandler())
}
