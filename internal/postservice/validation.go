package postservice

import (
	"math"
	"strings"

	"github.com/sushihentaime/inkwell/internal/common"
)

func (req *CreatePostRequest) normalize() {
	req.Title = strings.TrimSpace(req.Title)
	req.Tags = strings.TrimSpace(req.Tags)
	req.Body = strings.TrimSpace(sanitizeMarkdown(req.Body))
}

// Validate checks a new post before anything is stored for it, cover included.
func (req *CreatePostRequest) Validate() error {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateTags(v, req.Tags)
	validateBody(v, sanitizeMarkdown(req.Body))
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

func validateTitle(v *common.Validator, title string) {
	v.Check(common.NotBlank(title), "title", "must be provided")
	v.Check(common.MaxChars(title, 200), "title", "must not be more than 200 characters long")
}

func validateTags(v *common.Validator, tags string) {
	v.Check(common.NotBlank(tags), "tags", "must be provided")
	v.Check(common.MaxChars(tags, 500), "tags", "must not be more than 500 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(common.NotBlank(body), "body", "must be provided")
}

func validateStatus(v *common.Validator, status string) {
	v.Check(common.PermittedValue(PostStatus(status), StatusDraft, StatusPublished), "status", "must be DRAFT or PUBLISHED")
}

// maxPage keeps the listing offset, (page-1)*PostsPerPage, from overflowing.
const maxPage = math.MaxInt / PostsPerPage

func validatePage(v *common.Validator, page int) {
	v.Check(page > 0 && page <= maxPage, "page", "page does not exist")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
