package postservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparatorRX = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns s into a lowercase, URL-safe string: accents are folded ("Café" becomes "cafe") and every
// other run of characters outside [a-z0-9] becomes a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	slug := slugSeparatorRX.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "post"
	}

	return slug
}

// GenerateUniqueSlug returns the slug of title, or of title suffixed with -1, -2, ... when the plain slug is
// already taken. The suffix is appended to the title before slugifying.
func (s *PostService) GenerateUniqueSlug(ctx context.Context, title string) (string, error) {
	slug := Slugify(title)

	for n := 1; ; n++ {
		exists, err := s.m.slugExists(ctx, slug)
		if err != nil {
			return "", err
		}

		if !exists {
			return slug, nil
		}

		slug = Slugify(fmt.Sprintf("%s-%d", title, n))
	}
}
