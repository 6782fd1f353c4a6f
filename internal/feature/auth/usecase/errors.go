// Package usecase implements the business logic for the auth feature.
package usecase

import "lucius_backend/internal/shared/apperr"

var (
	// ErrInvalidInput is returned when a required field is blank.
	ErrInvalidInput = apperr.New(apperr.KindInvalidInput, "request.invalid", "invalid request")

	// ErrUserAlreadyExists is returned when the username is already registered.
	ErrUserAlreadyExists = apperr.New(apperr.KindConflict, "user.exists", "username already exists")

	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user.not_found", "user not found")

	// ErrRoleNotFound is returned when a requested role name does not resolve.
	ErrRoleNotFound = apperr.New(apperr.KindNotFound, "role.not_found", "role not found")

	// ErrGitlabUserExists is returned when the user already has a GitLab mapping.
	ErrGitlabUserExists = apperr.New(apperr.KindConflict, "gitlab_user.exists", "gitlab account already linked")

	// ErrGitlabUserNotFound is returned when the user has no GitLab mapping.
	ErrGitlabUserNotFound = apperr.New(apperr.KindNotFound, "gitlab_user.not_found", "gitlab account not linked")

	// ErrRemoteCallFailed covers network errors, timeouts and error statuses from GitLab.
	ErrRemoteCallFailed = apperr.New(apperr.KindRemoteCallFailed, "remote.failed", "gitlab request failed")

	// ErrRemoteResponseMalformed is returned when a GitLab response lacks expected fields.
	ErrRemoteResponseMalformed = apperr.New(apperr.KindUnexpected, "remote.unexpected", "unexpected gitlab response")

	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "auth.invalid_credentials", "invalid username or password")

	// ErrInvalidRefreshToken is returned when a refresh token is malformed, unknown, revoked or expired.
	ErrInvalidRefreshToken = apperr.New(apperr.KindUnauthorized, "auth.invalid_refresh_token", "invalid refresh token")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = apperr.New(apperr.KindNotFound, "session.not_found", "session not found")
)
