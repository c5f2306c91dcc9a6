package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	app := &application{config: newTestConfig(t), logger: newTestLogger()}
	ts := newTestServer(t, app.routes())

	status, headers, body := ts.get(t, "/v1/healthcheck", "")

	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, map[string]any{"environment": "testing", "version": "test"}, body["system_info"])
}

func TestSignupHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantError  any
	}{
		{
			name:       "Valid Request",
			payload:    map[string]any{"name": "Ana", "email": "Ana@Example.com", "password": "secret123"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Duplicate Email In Other Case",
			payload:    map[string]any{"name": "Ana Two", "email": "ANA@example.COM", "password": "secret123"},
			wantStatus: http.StatusConflict,
			wantError:  map[string]any{"email": "a user with this email address already exists"},
		},
		{
			name:       "Malformed Email",
			payload:    map[string]any{"name": "Bob", "email": "bob", "password": "secret123"},
			wantStatus: http.StatusBadRequest,
			wantError:  map[string]any{"email": "must be a valid email address"},
		},
		{
			name:       "Short Password",
			payload:    map[string]any{"name": "Bob", "email": "bob@example.com", "password": "123"},
			wantStatus: http.StatusBadRequest,
			wantError:  map[string]any{"password": "must be between 6 and 72 bytes long"},
		},
		{
			name:       "Unknown Field",
			payload:    map[string]any{"name": "Bob", "email": "bob@example.com", "password": "secret123", "role": "admin"},
			wantStatus: http.StatusBadRequest,
			wantError:  `request body contains unknown field "role"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/auth/signup", tc.payload, "")

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantError != nil {
				assert.Equal(t, tc.wantError, body["error"])
				return
			}

			user := body["user"].(map[string]any)
			assert.Equal(t, "Ana", user["name"])
			assert.Equal(t, "ana@example.com", user["email"])
			assert.NotZero(t, user["id"])
			assert.NotContains(t, user, "password")
			assert.NotEmpty(t, body["token"])
		})
	}
}

func TestSignupHandler_MalformedBody(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	res := ts.do(t, http.MethodPost, "/api/auth/signup", strings.NewReader(`{"name": "Ana",`), "application/json", "")
	status, _, body := readResponse(t, res)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "request body contains badly-formed JSON", body["error"])
}

func TestSigninHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.signup(t, "Ana", "ana@example.com")

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantError  any
	}{
		{
			name:       "Valid Credentials",
			payload:    map[string]any{"email": "ANA@example.com", "password": "secret123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Wrong Password",
			payload:    map[string]any{"email": "ana@example.com", "password": "wrong-password"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid authentication credentials",
		},
		{
			name:       "Unknown Email",
			payload:    map[string]any{"email": "nobody@example.com", "password": "secret123"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid authentication credentials",
		},
		{
			name:       "Missing Password",
			payload:    map[string]any{"email": "ana@example.com"},
			wantStatus: http.StatusBadRequest,
			wantError:  map[string]any{"password": "must be provided"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/auth/signin", tc.payload, "")

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantError != nil {
				assert.Equal(t, tc.wantError, body["error"])
				return
			}

			user := body["user"].(map[string]any)
			assert.Equal(t, "ana@example.com", user["email"])
			assert.NotEmpty(t, body["token"])
		})
	}
}

func TestValidateHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := ts.signup(t, "Ana", "ana@example.com")

	t.Run("Valid Token", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/auth/validate", nil, token)

		assert.Equal(t, http.StatusOK, status)
		user := body["user"].(map[string]any)
		assert.Equal(t, "Ana", user["name"])
		assert.Equal(t, "ana@example.com", user["email"])
		assert.Equal(t, true, user["status"])
	})

	t.Run("Missing Token", func(t *testing.T) {
		status, headers, body := ts.post(t, "/api/auth/validate", nil, "")

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Bearer", headers.Get("WWW-Authenticate"))
		assert.Equal(t, "invalid or missing authentication token", body["error"])
	})

	t.Run("Tampered Token", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/auth/validate", nil, token+"x")

		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestRoutesNotFound(t *testing.T) {
	app := &application{config: newTestConfig(t), logger: newTestLogger()}
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/nothing-here", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", body["error"])
}
