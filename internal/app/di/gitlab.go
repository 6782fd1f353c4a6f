// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"lucius_backend/internal/app/config"
	"lucius_backend/internal/platform/externalapi/gitlab"
	infrahttp "lucius_backend/internal/platform/http"
	"lucius_backend/internal/shared/ratelimiter"
)

// NewGitlabClient creates a GitLab admin API client with its own HTTP client and rate limiter.
func NewGitlabClient(cfg config.GitLabConfig) *gitlab.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	return gitlab.NewClient(gitlab.Config{
		BaseURL:    cfg.BaseURL,
		AdminToken: cfg.AdminToken,
		Timeout:    cfg.Timeout,
	}, httpClient, limiter)
}
