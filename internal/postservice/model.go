package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("author_id does not exist")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

// postColumns expects the post aliased as p and its author as u.
const postColumns = `p.id, p.slug, p.title, p.tags, p.tag_set, p.body, p.cover, p.status, p.author_id, u.name, p.created_at, p.updated_at`

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post

	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Tags, pq.Array(&p.TagSet), &p.Body, &p.Cover, &p.Status, &p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (m *PostModel) insert(ctx context.Context, p *Post) (*Post, error) {
	query := `
		WITH p AS (
			INSERT INTO posts (slug, title, tags, tag_set, body, cover, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + postColumns + `
		FROM p
		JOIN users u ON u.id = p.author_id`

	args := []any{p.Slug, p.Title, p.Tags, pq.Array(p.TagSet), p.Body, p.Cover, p.AuthorID}

	post, err := scanPost(m.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case common.IsUniqueViolation(err, "posts_slug_key"):
			return nil, ErrDuplicateSlug
		case common.IsForeignKeyViolation(err, "posts_author_id_fkey"):
			return nil, ErrUserForeignKey
		default:
			return nil, err
		}
	}

	return post, nil
}

func (m *PostModel) slugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool

	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// getPostBySlug returns the post with its author's name, whatever its status.
func (m *PostModel) getPostBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1`

	post, err := scanPost(m.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return post, nil
}

// update applies the non-nil fields of req and bumps updated_at. The slug never changes.
func (m *PostModel) update(ctx context.Context, slug string, req *UpdatePostRequest, tagSet []string) (*Post, error) {
	query := `
		WITH p AS (
			UPDATE posts
			SET title = COALESCE($2, title),
				tags = COALESCE($3, tags),
				tag_set = COALESCE($4, tag_set),
				body = COALESCE($5, body),
				cover = COALESCE($6, cover),
				status = COALESCE($7, status),
				updated_at = NOW()
			WHERE slug = $1
			RETURNING *
		)
		SELECT ` + postColumns + `
		FROM p
		JOIN users u ON u.id = p.author_id`

	var tagSetArg any
	if tagSet != nil {
		tagSetArg = pq.Array(tagSet)
	}

	args := []any{slug, req.Title, req.Tags, tagSetArg, req.Body, req.Cover, req.Status}

	post, err := scanPost(m.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return post, nil
}

func (m *PostModel) delete(ctx context.Context, slug string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getPosts returns a page of posts, newest first. A nil status lists every status.
func (m *PostModel) getPosts(ctx context.Context, status *PostStatus, limit, offset int) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE ($1::text IS NULL OR p.status = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	var statusArg any
	if status != nil {
		statusArg = string(*status)
	}

	return m.queryPosts(ctx, query, statusArg, limit, offset)
}

// getRelatedPosts returns published posts other than slug sharing at least one of terms, newest first.
func (m *PostModel) getRelatedPosts(ctx context.Context, slug string, terms []string, limit int) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.status = 'PUBLISHED' AND p.slug <> $1 AND p.tag_set && $2
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3`

	return m.queryPosts(ctx, query, slug, pq.Array(terms), limit)
}

func (m *PostModel) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
