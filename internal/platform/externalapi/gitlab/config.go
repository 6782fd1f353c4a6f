// Package gitlab provides a client for the GitLab REST API (v4) used as the remote identity provider.
package gitlab

import "time"

// Config holds configuration for the GitLab API client.
type Config struct {
	BaseURL    string        // API root, e.g. "https://gitlab.example.com/api/v4"
	AdminToken string        // personal access token of an administrator (api + sudo scopes)
	Timeout    time.Duration // HTTP request timeout
}
