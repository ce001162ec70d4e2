package app

import (
	"net/http"
	"time"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type CreateDirectorRequest struct {
	Name        string    `json:"name" validate:"required,max=255"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"required"`
	Nationality string    `json:"nationality" validate:"required,max=100"`
}

type UpdateDirectorRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=255"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Nationality *string    `json:"nationality" validate:"omitempty,max=100"`
}

type DirectorResponse struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Nationality string    `json:"nationality"`
}

func (app *Application) ListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := app.directorRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]DirectorResponse, len(directors))
	for i, director := range directors {
		resp[i] = toDirectorResponse(director)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "directorId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	director, err := app.directorRepo.GetByID(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toDirectorResponse(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var req CreateDirectorRequest

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

	director, err := app.directorRepo.Create(r.Context(), domain.CreateDirectorCommand{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toDirectorResponse(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "directorId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateDirectorRequest

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

	director, err := app.directorRepo.Update(r.Context(), id, domain.UpdateDirectorCommand{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toDirectorResponse(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "directorId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.directorRepo.Delete(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDirectorResponse(director *domain.Director) DirectorResponse {
	return DirectorResponse{
		Id:          director.ID,
		Name:        director.Name,
		DateOfBirth: director.DateOfBirth,
		Nationality: director.Nationality,
	}
}
