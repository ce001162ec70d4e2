package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinelist/movie-catalog-service/internal/domain"
)

type contextKey string

const userIDContextKey = contextKey("userID")

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate verifies the bearer token, when one is supplied, and stashes
// the subject's user id in the request context. Tokens are issued by a
// separate identity service; this side checks the signature and that the
// subject maps to an account the catalog knows. Requests without a token pass
// through anonymously.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			app.invalidTokenResponse(w, r)
			return
		}

		userID, err := app.verifyToken(token)
		if err != nil {
			app.invalidTokenResponse(w, r)
			return
		}

		if _, err := app.userRepo.GetByID(r.Context(), userID); err != nil {
			var userNotFound domain.UserNotFoundError
			if errors.As(err, &userNotFound) {
				app.invalidTokenResponse(w, r)
				return
			}

			app.serverErrorResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextUserID(r) == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// contextUserID returns the authenticated user's id, 0 for anonymous requests.
func (app *Application) contextUserID(r *http.Request) int {
	userID, _ := r.Context().Value(userIDContextKey).(int)

	return userID
}

func (app *Application) verifyToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			return []byte(app.config.JWT.Secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return 0, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(subject)
	if err != nil || userID < 1 {
		return 0, fmt.Errorf("invalid token subject %q", subject)
	}

	return userID, nil
}
