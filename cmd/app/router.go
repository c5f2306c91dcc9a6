package main

import (
	"net/http"
	"path/filepath"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	router.HandlerFunc(http.MethodPost, "/api/auth/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/signin", app.signinHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/validate", app.requireAuthUser(app.validateHandler))

	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPublishedPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug", app.showPublishedPostHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug/related", app.relatedPostsHandler)

	router.HandlerFunc(http.MethodPost, "/api/admin/posts", app.requireAuthUser(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/posts", app.requireAuthUser(app.listPostsHandler))
	router.HandlerFunc(http.MethodGet, "/api/admin/posts/:slug", app.requireAuthUser(app.showPostHandler))
	router.HandlerFunc(http.MethodPut, "/api/admin/posts/:slug", app.requireAuthUser(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/api/admin/posts/:slug", app.requireAuthUser(app.deletePostHandler))

	router.ServeFiles("/imagens/*filepath", http.Dir(filepath.Join(app.config.PublicDir, "imagens")))

	return app.recoverPanic(app.rateLimit(app.enableCORS(app.logRequest(router))))
}
