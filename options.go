package savset

import (
	"github.com/rs/zerolog"

	"github.com/variantlab/savset/pkg/errors"
)

// Option is a function that configures a Curator instance
type Option func(*curator) error

// WithLogger configures the logger used during curation.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *curator) error {
		c.logger = logger
		return nil
	}
}

// WithAuthority designates the review-confidence authority source at
// construction time. Equivalent to calling SetAuthority afterwards.
func WithAuthority(name string) Option {
	return func(c *curator) error {
		if name == "" {
			return errors.NewConfigError("curator", "authority name cannot be empty", nil)
		}
		c.authority = name
		return nil
	}
}

// WithManifest ingests a sources.yaml manifest during construction.
func WithManifest(path string) Option {
	return func(c *curator) error {
		return c.UseManifest(path)
	}
}
