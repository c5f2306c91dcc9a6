package main

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/postservice"
)

type postResponse struct {
	ID         int                    `json:"id"`
	Status     postservice.PostStatus `json:"status"`
	Slug       string                 `json:"slug"`
	Title      string                 `json:"title"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
	Cover      string                 `json:"cover"`
	Tags       string                 `json:"tags"`
	AuthorName string                 `json:"authorName"`
}

type postDetailResponse struct {
	postResponse
	Body string `json:"body"`
}

func (app *application) newPostResponse(p *postservice.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		Status:     p.Status,
		Slug:       p.Slug,
		Title:      p.Title,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Cover:      app.covers.URL(p.Cover),
		Tags:       p.Tags,
		AuthorName: p.AuthorName,
	}
}

func (app *application) newPostDetailResponse(p *postservice.Post) postDetailResponse {
	return postDetailResponse{postResponse: app.newPostResponse(p), Body: p.Body}
}

func (app *application) newPostListResponse(posts []postservice.Post) []postResponse {
	res := make([]postResponse, 0, len(posts))
	for i := range posts {
		res = append(res, app.newPostResponse(&posts[i]))
	}
	return res
}

// removeCover deletes a stored cover that no post references anymore.
func (app *application) removeCover(r *http.Request, name string) {
	err := app.covers.Remove(name)
	if err != nil {
		app.logger.Error("could not remove cover", slog.String("cover", name), slog.String("error", err.Error()), slog.String("request_id", app.getRequestID(r)))
	}
}

// ingestCover stores an upload. Any failure is reported as a rejected file; store failures are logged.
func (app *application) ingestCover(w http.ResponseWriter, r *http.Request, fh *multipart.FileHeader) (string, bool) {
	name, err := app.covers.Ingest(fh)
	if err != nil {
		if !errors.Is(err, postservice.ErrCoverNotAllowed) {
			app.logError(r, err)
		}
		app.coverNotAllowedResponse(w, r)
		return "", false
	}

	return name, true
}

func (app *application) listPostsPage(w http.ResponseWriter, r *http.Request, list func(page int) ([]postservice.Post, error)) {
	page, err := app.readPageParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	posts, err := list(page)
	if err != nil {
		var validationErr common.ValidationError

		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": app.newPostListResponse(posts), "page": page}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listPublishedPostsHandler(w http.ResponseWriter, r *http.Request) {
	app.listPostsPage(w, r, func(page int) ([]postservice.Post, error) {
		return app.postService.GetPublishedPosts(r.Context(), page)
	})
}

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	app.listPostsPage(w, r, func(page int) ([]postservice.Post, error) {
		return app.postService.GetPosts(r.Context(), page)
	})
}

func (app *application) showPost(w http.ResponseWriter, r *http.Request, get func(slug string) (*postservice.Post, error)) {
	post, err := get(app.readSlugParam(r))
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": app.newPostDetailResponse(post)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showPublishedPostHandler answers 404 for drafts as well as for unknown slugs.
func (app *application) showPublishedPostHandler(w http.ResponseWriter, r *http.Request) {
	app.showPost(w, r, func(slug string) (*postservice.Post, error) {
		return app.postService.GetPublishedPostBySlug(r.Context(), slug)
	})
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	app.showPost(w, r, func(slug string) (*postservice.Post, error) {
		return app.postService.GetPostBySlug(r.Context(), slug)
	})
}

func (app *application) relatedPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.RelatedPosts(r.Context(), app.readSlugParam(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": app.newPostListResponse(posts)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	err := app.parseMultipart(w, r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := &postservice.CreatePostRequest{
		Title:    r.PostFormValue("title"),
		Tags:     r.PostFormValue("tags"),
		Body:     r.PostFormValue("body"),
		AuthorID: app.getUserContext(r).ID,
	}

	var validationErr common.ValidationError

	err = input.Validate()
	if err != nil {
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	upload := formFile(r.MultipartForm, "cover")
	if upload == nil {
		app.coverRequiredResponse(w, r)
		return
	}

	cover, ok := app.ingestCover(w, r, upload)
	if !ok {
		return
	}
	input.Cover = cover

	post, err := app.postService.CreatePost(r.Context(), input)
	if err != nil {
		app.removeCover(r, cover)

		switch {
		case errors.Is(err, postservice.ErrUserForeignKey):
			app.invalidAuthenticationTokenResponse(w, r)
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": app.newPostDetailResponse(post)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updatePostHandler takes a JSON body or a multipart form. Only the fields sent are changed.
func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readSlugParam(r)

	current, err := app.postService.GetPostBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var (
		input  postservice.UpdatePostRequest
		upload *multipart.FileHeader
	)

	if isMultipart(r) {
		err = app.parseMultipart(w, r)
		if err != nil {
			app.badRequestErrorResponse(w, r, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		form := r.MultipartForm
		input.Status = formValue(form, "status")
		input.Title = formValue(form, "title")
		input.Tags = formValue(form, "tags")
		input.Body = formValue(form, "body")
		upload = formFile(form, "cover")
	} else {
		err = app.parseJSON(w, r, &input)
		if err != nil {
			app.badRequestErrorResponse(w, r, err)
			return
		}
	}

	if upload != nil {
		cover, ok := app.ingestCover(w, r, upload)
		if !ok {
			return
		}
		input.Cover = &cover
	}

	post, err := app.postService.UpdatePost(r.Context(), slug, &input)
	if err != nil {
		if input.Cover != nil {
			app.removeCover(r, *input.Cover)
		}

		var validationErr common.ValidationError

		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if input.Cover != nil && current.Cover != post.Cover {
		app.removeCover(r, current.Cover)
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": app.newPostDetailResponse(post)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readSlugParam(r)

	post, err := app.postService.GetPostBySlug(r.Context(), slug)
	if err == nil {
		err = app.postService.DeletePost(r.Context(), slug)
	}
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.removeCover(r, post.Cover)

	err = app.writeJSON(w, http.StatusOK, envelope{"error": nil}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
