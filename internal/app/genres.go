package app

import (
	"net/http"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type GenreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type GenreResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

func (app *Application) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := app.genreRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		resp[i] = toGenreResponse(genre)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "genreId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genre, err := app.genreRepo.GetByID(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toGenreResponse(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	genre, err := app.genreRepo.Create(r.Context(), req.Name)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toGenreResponse(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "genreId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req GenreRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	genre, err := app.genreRepo.Update(r.Context(), id, req.Name)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toGenreResponse(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "genreId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.genreRepo.Delete(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toGenreResponse(genre *domain.Genre) GenreResponse {
	return GenreResponse{
		Id:   genre.ID,
		Name: genre.Name,
	}
}

func toGenreResponses(genres []domain.Genre) []GenreResponse {
	responses := make([]GenreResponse, len(genres))
	for i := range genres {
		responses[i] = toGenreResponse(&genres[i])
	}

	return responses
}
