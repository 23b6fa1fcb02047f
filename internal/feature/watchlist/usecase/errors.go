// Package usecase implements the business logic for the watchlist feature.
package usecase

import "watchlist_backend/internal/shared/apperror"

var (
	// ErrTitleRequired is returned when a new item has an empty or blank title.
	ErrTitleRequired = apperror.Validation("title is required")

	// ErrContentTypeRequired is returned when a new item omits contentType.
	ErrContentTypeRequired = apperror.Validation("contentType is required")

	// ErrInvalidContentType is returned for a contentType outside the movie and tv values.
	ErrInvalidContentType = apperror.Validation("contentType must be one of: movie, tv")

	// ErrStatusRequired is returned when an update sets status to null.
	ErrStatusRequired = apperror.Validation("status cannot be null")

	// ErrInvalidStatus is returned for a status outside the want_to_watch and watched values.
	ErrInvalidStatus = apperror.Validation("status must be one of: want_to_watch, watched")

	// ErrInvalidRating is returned when a rating is present but not between 1 and 5.
	ErrInvalidRating = apperror.Validation("rating must be an integer between 1 and 5")

	// ErrPlatformNotFound is returned when platformId refers to no known platform.
	ErrPlatformNotFound = apperror.Validation("platform not found")

	// ErrNoFieldsToUpdate is returned when an update body carries no recognised field.
	ErrNoFieldsToUpdate = apperror.Validation("no fields to update")

	// ErrItemNotFound covers both a missing item and an item owned by someone else.
	ErrItemNotFound = apperror.NotFound("not found")
)
