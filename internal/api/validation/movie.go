package validation

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// CreateMovieRequest mirrors the fields of a movie-creation payload.
type CreateMovieRequest struct {
	Title         string
	Year          int
	Cover         string
	Description   string
	Duration      int
	ContentRating string
	Source        string
	Tags          []string
}

// UpdateMovieRequest carries only the fields the caller wants to change.
type UpdateMovieRequest struct {
	Title         *string
	Year          *int
	Cover         *string
	Description   *string
	Duration      *int
	ContentRating *string
	Source        *string
	Tags          []string
}

// ValidateCreateMovieRequest validates a movie-creation payload.
func ValidateCreateMovieRequest(req CreateMovieRequest) error {
	return validation.Errors{
		"title":         validation.Validate(req.Title, validation.Required, validation.Length(1, 80)),
		"year":          validation.Validate(req.Year, validation.Required, validation.Min(1888), validation.Max(2077)),
		"cover":         validation.Validate(req.Cover, validation.Required, is.URL),
		"description":   validation.Validate(req.Description, validation.Required, validation.Length(1, 300)),
		"duration":      validation.Validate(req.Duration, validation.Required, validation.Min(1), validation.Max(300)),
		"contentRating": validation.Validate(req.ContentRating, validation.Required, validation.Length(1, 5)),
		"source":        validation.Validate(req.Source, validation.Required, is.URL),
		"tags":          validation.Validate(req.Tags, validation.By(maxTagLength(50))),
	}.Filter()
}

// ValidateUpdateMovieRequest validates only the fields present in a partial
// movie update.
func ValidateUpdateMovieRequest(req UpdateMovieRequest) error {
	errs := validation.Errors{}

	if req.Title != nil {
		errs["title"] = validation.Validate(*req.Title, validation.Required, validation.Length(1, 80))
	}
	if req.Year != nil {
		errs["year"] = validation.Validate(*req.Year, validation.Min(1888), validation.Max(2077))
	}
	if req.Cover != nil {
		errs["cover"] = validation.Validate(*req.Cover, validation.Required, is.URL)
	}
	if req.Description != nil {
		errs["description"] = validation.Validate(*req.Description, validation.Required, validation.Length(1, 300))
	}
	if req.Duration != nil {
		errs["duration"] = validation.Validate(*req.Duration, validation.Min(1), validation.Max(300))
	}
	if req.ContentRating != nil {
		errs["contentRating"] = validation.Validate(*req.ContentRating, validation.Required, validation.Length(1, 5))
	}
	if req.Source != nil {
		errs["source"] = validation.Validate(*req.Source, validation.Required, is.URL)
	}
	if req.Tags != nil {
		errs["tags"] = validation.Validate(req.Tags, validation.By(maxTagLength(50)))
	}

	return errs.Filter()
}

func maxTagLength(max int) validation.RuleFunc {
	return func(value interface{}) error {
		tags, ok := value.([]string)
		if !ok {
			return nil
		}
		for _, tag := range tags {
			if tag == "" || len(tag) > max {
				return fmt.Errorf("each tag must be between 1 and %d characters", max)
			}
		}
		return nil
	}
}
