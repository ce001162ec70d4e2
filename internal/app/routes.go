package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("movie-catalog-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.authenticate)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMovies)
		r.Get("/recent", app.GetRecentMovies)
		r.Get("/{movieId}", app.GetMovie)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/", app.CreateMovie)
			r.Patch("/{movieId}", app.UpdateMovie)
			r.Delete("/{movieId}", app.DeleteMovie)
			r.Post("/{movieId}/like", app.LikeMovie)
			r.Post("/{movieId}/dislike", app.DislikeMovie)
		})
	})

	r.Route("/directors", func(r chi.Router) {
		r.Get("/", app.ListDirectors)
		r.Get("/{directorId}", app.GetDirector)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/", app.CreateDirector)
			r.Patch("/{directorId}", app.UpdateDirector)
			r.Delete("/{directorId}", app.DeleteDirector)
		})
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", app.ListGenres)
		r.Get("/{genreId}", app.GetGenre)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/", app.CreateGenre)
			r.Patch("/{genreId}", app.UpdateGenre)
			r.Delete("/{genreId}", app.DeleteGenre)
		})
	})

	r.With(app.requireAuthentication).Post("/uploads/presigned-url", app.CreateUploadTarget)

	return r
}
