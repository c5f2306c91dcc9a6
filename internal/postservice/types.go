package postservice

import (
	"database/sql"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"

	// PostsPerPage is the fixed page size of every listing.
	PostsPerPage = 5
	// RelatedPostsLimit caps the related posts returned for a post.
	RelatedPostsLimit = 4

	maxSlugAttempts = 5
)

type Post struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	// Tags holds the comma separated terms exactly as submitted; TagSet is their normalized form.
	Tags   string   `json:"tags"`
	TagSet []string `json:"-"`
	// Body is stored in Markdown format.
	Body       string     `json:"body"`
	Cover      string     `json:"cover"`
	Status     PostStatus `json:"status"`
	AuthorID   int        `json:"authorId"`
	AuthorName string     `json:"authorName"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m *PostModel
}

type CreatePostRequest struct {
	Title    string
	Tags     string
	Body     string
	Cover    string
	AuthorID int
}

// UpdatePostRequest carries the fields of an edit. A nil field keeps the stored value.
type UpdatePostRequest struct {
	Status *string `json:"status"`
	Title  *string `json:"title"`
	Tags   *string `json:"tags"`
	Body   *string `json:"body"`
	Cover  *string `json:"-"`
}
