// Package validation enforces field constraints on profile writes. The edge
// performs the same checks, but the services re-validate rather than assume
// the boundary validation ran.
package validation

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"tapestry/internal/models"
)

const (
	MinNameLen     = 2
	MaxNameLen     = 30
	MinUsernameLen = 2
	MaxUsernameLen = 30
	MinBioLen      = 3
	MaxBioLen      = 1000
)

// ValidateProfile checks the profile fields a user submits on save.
// The returned error, if any, is a VALIDATION_ERROR AppError.
func ValidateProfile(username, name, bio, image string) error {
	if err := lengthBetween("Username", username, MinUsernameLen, MaxUsernameLen); err != nil {
		return err
	}
	if err := lengthBetween("Name", name, MinNameLen, MaxNameLen); err != nil {
		return err
	}
	if err := lengthBetween("Bio", bio, MinBioLen, MaxBioLen); err != nil {
		return err
	}
	return validateImageURL(image)
}

func lengthBetween(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return models.NewValidationError(
			fmt.Sprintf("%s must be between %d and %d characters", field, min, max))
	}
	return nil
}

// validateImageURL accepts any http(s) URL with a host. The upload service
// owns the content behind it; the core only checks the shape.
func validateImageURL(image string) error {
	if image == "" {
		return models.NewValidationError("Profile photo is required")
	}
	u, err := url.Parse(image)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return models.NewValidationError("Profile photo must be a valid URL")
	}
	return nil
}
