package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sushihentaime/inkwell/internal/common"
)

func NewPostService(db *sql.DB) *PostService {
	return &PostService{m: newPostModel(db)}
}

// CreatePost validates the request, derives a unique slug from the title and stores the post as a draft.
// A slug taken between the probe and the insert is regenerated a bounded number of times.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	req.normalize()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Post{
		Title:    req.Title,
		Tags:     req.Tags,
		TagSet:   NormalizeTags(req.Tags),
		Body:     req.Body,
		Cover:    req.Cover,
		AuthorID: req.AuthorID,
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.GenerateUniqueSlug(ctx, req.Title)
		if err != nil {
			return nil, err
		}

		p.Slug = slug

		post, err := s.m.insert(ctx, p)
		if errors.Is(err, ErrDuplicateSlug) {
			continue
		}

		return post, err
	}

	return nil, fmt.Errorf("could not allocate a slug for %q after %d attempts: %w", req.Title, maxSlugAttempts, ErrDuplicateSlug)
}

// GetPostBySlug returns a post whatever its status.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.m.getPostBySlug(ctx, slug)
}

// GetPublishedPostBySlug hides drafts behind ErrRecordNotFound.
func (s *PostService) GetPublishedPostBySlug(ctx context.Context, slug string) (*Post, error) {
	post, err := s.m.getPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if post.Status != StatusPublished {
		return nil, ErrRecordNotFound
	}

	return post, nil
}

// GetPosts returns a page of posts of any status.
func (s *PostService) GetPosts(ctx context.Context, page int) ([]Post, error) {
	return s.getPage(ctx, nil, page)
}

// GetPublishedPosts returns a page of published posts.
func (s *PostService) GetPublishedPosts(ctx context.Context, page int) ([]Post, error) {
	status := StatusPublished
	return s.getPage(ctx, &status, page)
}

func (s *PostService) getPage(ctx context.Context, status *PostStatus, page int) ([]Post, error) {
	v := common.NewValidator()
	validatePage(v, page)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPosts(ctx, status, PostsPerPage, (page-1)*PostsPerPage)
}

// UpdatePost edits the fields present in req. Each field is bound on its own; the slug is kept.
func (s *PostService) UpdatePost(ctx context.Context, slug string, req *UpdatePostRequest) (*Post, error) {
	v := common.NewValidator()

	if req.Status != nil {
		validateStatus(v, *req.Status)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
		validateTitle(v, title)
	}

	var tagSet []string
	if req.Tags != nil {
		tags := strings.TrimSpace(*req.Tags)
		req.Tags = &tags
		v.Check(common.MaxChars(tags, 500), "tags", "must not be more than 500 characters long")
		tagSet = NormalizeTags(tags)
	}

	if req.Body != nil {
		body := strings.TrimSpace(sanitizeMarkdown(*req.Body))
		req.Body = &body
		validateBody(v, body)
	}

	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.update(ctx, slug, req, tagSet)
}

func (s *PostService) DeletePost(ctx context.Context, slug string) error {
	return s.m.delete(ctx, slug)
}

// RelatedPosts returns up to RelatedPostsLimit published posts sharing at least one tag with the post
// identified by slug, newest first. An unknown slug or a post without tags yields an empty result.
func (s *PostService) RelatedPosts(ctx context.Context, slug string) ([]Post, error) {
	post, err := s.m.getPostBySlug(ctx, slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return []Post{}, nil
		default:
			return nil, err
		}
	}

	terms := NormalizeTags(post.Tags)
	if len(terms) == 0 {
		return []Post{}, nil
	}

	return s.m.getRelatedPosts(ctx, post.Slug, terms, RelatedPostsLimit)
}
