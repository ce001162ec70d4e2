package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"version":   {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// authHeaders mints a bearer token for the given user, signed with the same
// secret the app verifies against.
func authHeaders(t testing.TB, userID int) map[string]string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + signed}
}

func execSQL(t testing.TB, app *TestApp, query string, args ...any) {
	_, err := app.DB.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}

func countRows(t testing.TB, app *TestApp, query string, args ...any) int {
	var count int
	err := app.DB.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}

// stageUpload drops a file into the media temp folder so the write pipeline
// has something to relocate.
func stageUpload(t testing.TB, app *TestApp, fileName string) {
	path := filepath.Join(app.MediaDir, "public", "temp", fileName)
	require.NoError(t, os.WriteFile(path, []byte("video bytes"), 0o644))
}

func permanentFileExists(app *TestApp, fileName string) bool {
	_, err := os.Stat(filepath.Join(app.MediaDir, "public", "movie", fileName))
	return err == nil
}

func tempFileExists(app *TestApp, fileName string) bool {
	_, err := os.Stat(filepath.Join(app.MediaDir, "public", "temp", fileName))
	return err == nil
}
