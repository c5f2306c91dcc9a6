package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/inkwell/internal/common"
)

const testBaseURL = "http://localhost:4444"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig(t *testing.T) *Config {
	cfg := &Config{
		Environment: "testing",
		Version:     "test",
		BaseURL:     testBaseURL,
		PublicDir:   t.TempDir(),
	}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour

	return cfg
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApplication runs against a fresh postgres container and no message broker.
func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)

	app := newApplication(newTestConfig(t), newTestLogger(), db, nil)

	return app, db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType, token string) *http.Response {
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func (ts *testServer) send(t *testing.T, method, path string, data any, token string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, ts.do(t, method, path, bytes.NewReader(jsonPayload), "application/json", token))
}

func (ts *testServer) post(t *testing.T, path string, data any, token string) (int, http.Header, envelope) {
	return ts.send(t, http.MethodPost, path, data, token)
}

func (ts *testServer) put(t *testing.T, path string, data any, token string) (int, http.Header, envelope) {
	return ts.send(t, http.MethodPut, path, data, token)
}

func (ts *testServer) get(t *testing.T, path string, token string) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodGet, path, nil, "", token))
}

func (ts *testServer) delete(t *testing.T, path string, token string) (int, http.Header, envelope) {
	return readResponse(t, ts.do(t, http.MethodDelete, path, nil, "", token))
}

type testUpload struct {
	contentType string
	content     []byte
}

var pngUpload = &testUpload{contentType: "image/png", content: []byte("\x89PNG fake image")}

func (ts *testServer) sendForm(t *testing.T, method, path string, fields map[string]string, upload *testUpload, token string) (int, http.Header, envelope) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}

	if upload != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
		h.Set("Content-Type", upload.contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(upload.content); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return readResponse(t, ts.do(t, method, path, body, w.FormDataContentType(), token))
}

// signup registers a user through the API and returns its token.
func (ts *testServer) signup(t *testing.T, name, email string) string {
	status, _, body := ts.post(t, "/api/auth/signup", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}, "")
	if !assert.Equal(t, http.StatusCreated, status, body) {
		t.FailNow()
	}

	return body["token"].(string)
}

// createPost creates a post through the API and returns its JSON view.
func (ts *testServer) createPost(t *testing.T, token, title, tags string) map[string]any {
	status, _, body := ts.sendForm(t, http.MethodPost, "/api/admin/posts", map[string]string{
		"title": title,
		"tags":  tags,
		"body":  "# " + title,
	}, pngUpload, token)
	if !assert.Equal(t, http.StatusCreated, status, body) {
		t.FailNow()
	}

	return body["post"].(map[string]any)
}

func (ts *testServer) publish(t *testing.T, token, slug string) {
	status, _, body := ts.put(t, "/api/admin/posts/"+slug, map[string]any{"status": "PUBLISHED"}, token)
	if !assert.Equal(t, http.StatusOK, status, body) {
		t.FailNow()
	}
}

func coverName(url string) string {
	return strings.TrimPrefix(url, fmt.Sprintf("%s/imagens/cover/", testBaseURL))
}
