package schema

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const (
	fallbackSlug    = "post"
	maxSlugAttempts = 50
	maxSlugBaseLen  = 80
)

// Slugify derives a URL-safe slug from s. An input with no usable characters
// yields "post".
func Slugify(s string) string {
	out := slug.Make(s)
	if len(out) > maxSlugBaseLen {
		out = strings.TrimRight(out[:maxSlugBaseLen], "-")
	}
	if out == "" {
		return fallbackSlug
	}
	return out
}

// SlugExists reports whether a slug is already taken.
type SlugExists func(ctx context.Context, slug string) (bool, error)

// UniqueSlug returns base if free, otherwise base-2, base-3, ... and finally a
// timestamp suffix.
func UniqueSlug(ctx context.Context, base string, exists SlugExists) (string, error) {
	if base == "" {
		base = fallbackSlug
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()), nil
}
