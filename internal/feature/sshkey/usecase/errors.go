// Package usecase implements the business logic for the sshkey feature.
package usecase

import "lucius_backend/internal/shared/apperr"

var (
	// ErrInvalidInput is returned when the title or key material is blank.
	ErrInvalidInput = apperr.New(apperr.KindInvalidInput, "request.invalid", "invalid request")

	// ErrKeyNotFound is returned when the key does not exist for the caller.
	ErrKeyNotFound = apperr.New(apperr.KindNotFound, "sshkey.not_found", "ssh key not found")

	// ErrGitlabUserNotFound is returned when the caller has no linked GitLab account.
	ErrGitlabUserNotFound = apperr.New(apperr.KindNotFound, "gitlab_user.not_found", "gitlab account not linked")

	// ErrRemoteCallFailed covers network errors, timeouts and 5xx responses from GitLab.
	ErrRemoteCallFailed = apperr.New(apperr.KindRemoteCallFailed, "remote.failed", "gitlab request failed")

	// ErrRemoteResponseMalformed is returned when a GitLab response or error body lacks expected fields.
	ErrRemoteResponseMalformed = apperr.New(apperr.KindUnexpected, "remote.unexpected", "unexpected gitlab response")
)

// KeyRejected はGitLabが鍵を拒否したときのエラーを返します。msg はGitLabの検証メッセージそのままです。
func KeyRejected(msg string) error {
	return apperr.New(apperr.KindValidationRejected, "sshkey.rejected", msg)
}
