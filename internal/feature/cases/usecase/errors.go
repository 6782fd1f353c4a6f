// Package usecase implements the business logic for the cases feature.
package usecase

import "lucius_backend/internal/shared/apperr"

var (
	// ErrCaseNotFound is returned when no case has the given id.
	ErrCaseNotFound = apperr.New(apperr.KindNotFound, "case.not_found", "case not found")

	// ErrForbidden is returned when the caller may not create or modify the case.
	ErrForbidden = apperr.New(apperr.KindForbidden, "case.forbidden", "not allowed to modify this case")

	// ErrInvalidInput is returned when a field is blank, too long, or not a URL.
	ErrInvalidInput = apperr.New(apperr.KindInvalidInput, "request.invalid", "invalid request")
)
