package app

import "net/http"

type UploadTargetResponse struct {
	FileName  string `json:"fileName"`
	UploadURL string `json:"uploadUrl"`
}

// CreateUploadTarget hands the client a short-lived URL to push the raw movie
// file to the temp area. The returned file name is what CreateMovie later
// accepts as movieFileName.
func (app *Application) CreateUploadTarget(w http.ResponseWriter, r *http.Request) {
	target, err := app.media.CreateUploadTarget(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := UploadTargetResponse{
		FileName:  target.FileName,
		UploadURL: target.UploadURL,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
