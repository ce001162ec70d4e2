package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinelist/movie-catalog-service/internal/domain"
	"github.com/cinelist/movie-catalog-service/internal/pagination"
)

const (
	RecentMoviesKey = "movies:recent"
	recentLimit     = 10
)

var defaultMovieOrder = []string{"id_DESC"}

type ListMoviesParams struct {
	Cursor string   `validate:"omitempty,max=2048"`
	Order  []string `validate:"omitempty,dive,sortorder"`
	Take   int      `validate:"gte=1,lte=100"`
	Title  string   `validate:"omitempty,max=255"`
}

type CreateMovieRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Detail        string `json:"detail" validate:"required"`
	DirectorID    int    `json:"directorId" validate:"required,gt=0"`
	GenreIDs      []int  `json:"genreIds" validate:"required,min=1,unique,dive,gt=0"`
	MovieFileName string `json:"movieFileName" validate:"required,max=255"`
}

type UpdateMovieRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Detail     *string `json:"detail"`
	DirectorID *int    `json:"directorId" validate:"omitempty,gt=0"`
	GenreIDs   []int   `json:"genreIds" validate:"omitempty,min=1,unique,dive,gt=0"`
}

type MovieResponse struct {
	Id            int               `json:"id"`
	Title         string            `json:"title"`
	Detail        *string           `json:"detail,omitempty"`
	Director      *DirectorResponse `json:"director,omitempty"`
	Genres        []GenreResponse   `json:"genres"`
	LikeCount     int               `json:"likeCount"`
	DislikeCount  int               `json:"dislikeCount"`
	MovieFilePath string            `json:"movieFilePath"`
	LikeStatus    *bool             `json:"likeStatus,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type MovieListResponse struct {
	Movies     []MovieResponse `json:"movies"`
	NextCursor *string         `json:"nextCursor"`
	Count      int             `json:"count"`
}

type DeleteMovieResponse struct {
	Id int `json:"id"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	params := toListMoviesParams(r)

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	order := params.Order
	if len(order) == 0 {
		order = defaultMovieOrder
	}

	page, err := app.movieRepo.GetAll(r.Context(), domain.MovieFilters{
		Title:  params.Title,
		Cursor: params.Cursor,
		Order:  order,
		Take:   params.Take,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if userID := app.contextUserID(r); userID != 0 {
		if err := app.attachLikeStatuses(r.Context(), page.Movies, userID); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	resp := MovieListResponse{
		Movies:     toMovieResponses(page.Movies, false),
		NextCursor: page.NextCursor,
		Count:      page.TotalRecords,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRecentMovies(w http.ResponseWriter, r *http.Request) {
	cached, err := app.redis.Get(r.Context(), RecentMoviesKey).Bytes()
	if err == nil {
		var resp []MovieResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			app.writeJSON(w, http.StatusOK, resp, nil)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		app.logError(r, err)
	}

	movies, err := app.movieRepo.GetRecent(r.Context(), recentLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toMovieResponses(movies, false)

	if data, err := json.Marshal(resp); err == nil {
		if err := app.redis.Set(r.Context(), RecentMoviesKey, data, app.config.RecentCacheTTL).Err(); err != nil {
			app.logError(r, err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetByID(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if userID := app.contextUserID(r); userID != 0 {
		if err := app.attachLikeStatuses(r.Context(), []*domain.Movie{movie}, userID); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie, true), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest

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

	movie, err := app.movieRepo.Create(r.Context(), domain.CreateMovieCommand{
		Title:         req.Title,
		Detail:        req.Detail,
		DirectorID:    req.DirectorID,
		GenreIDs:      req.GenreIDs,
		MovieFileName: req.MovieFileName,
		CreatorID:     app.contextUserID(r),
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie, true), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateMovieRequest

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

	movie, err := app.movieRepo.Update(r.Context(), id, domain.UpdateMovieCommand{
		Title:      req.Title,
		Detail:     req.Detail,
		DirectorID: req.DirectorID,
		GenreIDs:   req.GenreIDs,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie, true), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	deletedID, err := app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, DeleteMovieResponse{Id: deletedID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) attachLikeStatuses(ctx context.Context, movies []*domain.Movie, userID int) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]int, len(movies))
	for i, movie := range movies {
		ids[i] = movie.ID
	}

	statuses, err := app.likeRepo.GetStatuses(ctx, ids, userID)
	if err != nil {
		return err
	}

	for _, movie := range movies {
		if isLike, ok := statuses[movie.ID]; ok {
			v := isLike
			movie.LikeStatus = &v
		}
	}

	return nil
}

func toListMoviesParams(r *http.Request) ListMoviesParams {
	query := r.URL.Query()

	params := ListMoviesParams{
		Cursor: query.Get("cursor"),
		Order:  query["order"],
		Take:   pagination.DefaultTake,
		Title:  query.Get("title"),
	}

	if take := query.Get("take"); take != "" {
		if n, err := strconv.Atoi(take); err == nil {
			params.Take = n
		}
	}

	return params
}

func toMovieResponses(movies []*domain.Movie, withDetail bool) []MovieResponse {
	responses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = toMovieResponse(movie, withDetail)
	}

	return responses
}

func toMovieResponse(movie *domain.Movie, withDetail bool) MovieResponse {
	resp := MovieResponse{
		Id:            movie.ID,
		Title:         movie.Title,
		Genres:        toGenreResponses(movie.Genres),
		LikeCount:     movie.LikeCount,
		DislikeCount:  movie.DislikeCount,
		MovieFilePath: movie.MovieFilePath,
		LikeStatus:    movie.LikeStatus,
		CreatedAt:     movie.CreatedAt,
	}

	if movie.Director != nil {
		director := toDirectorResponse(movie.Director)
		resp.Director = &director
	}

	if withDetail && movie.Detail != nil {
		resp.Detail = &movie.Detail.Detail
	}

	return resp
}
