// Package dto defines the GitLab API request and response bodies.
package dto

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// User is the subset of the GitLab user representation this service reads.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
