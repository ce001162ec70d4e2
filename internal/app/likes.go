package app

import "net/http"

type LikeStatusResponse struct {
	MovieId    int   `json:"movieId"`
	LikeStatus *bool `json:"likeStatus"`
}

func (app *Application) LikeMovie(w http.ResponseWriter, r *http.Request) {
	app.toggleReaction(w, r, true)
}

func (app *Application) DislikeMovie(w http.ResponseWriter, r *http.Request) {
	app.toggleReaction(w, r, false)
}

func (app *Application) toggleReaction(w http.ResponseWriter, r *http.Request, isLike bool) {
	movieID, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.likeRepo.Toggle(r.Context(), movieID, app.contextUserID(r), isLike)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := LikeStatusResponse{
		MovieId:    movieID,
		LikeStatus: status,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
