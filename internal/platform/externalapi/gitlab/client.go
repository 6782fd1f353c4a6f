package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"lucius_backend/internal/platform/externalapi/gitlab/dto"
	"lucius_backend/internal/shared/ratelimiter"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client はGitLab APIを呼び出すクライアントです。
// 管理者トークンで認証し、ユーザーとして振る舞う場合は Sudo ヘッダーを付与します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Waiter
}

// NewClient は指定された設定・HTTPクライアント・レートリミッターでClientを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Waiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// CreateUser は管理者として POST /users を呼び出し、作成されたユーザーを返します。
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, 0, http.MethodPost, "/users", req, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("%w: POST /users: missing id", ErrMalformedResponse)
	}
	return &out, nil
}

// DeleteUser は管理者として DELETE /users/{id} を呼び出します。
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, 0, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListSSHKeys は sudoUserID のユーザーとして GET /user/keys を呼び出します。
func (c *Client) ListSSHKeys(ctx context.Context, sudoUserID int64) ([]dto.SSHKey, error) {
	var out []dto.SSHKey
	if err := c.do(ctx, sudoUserID, http.MethodGet, "/user/keys", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dto.SSHKey{}
	}
	return out, nil
}

// CreateSSHKey は sudoUserID のユーザーとして POST /user/keys を呼び出します。
func (c *Client) CreateSSHKey(ctx context.Context, sudoUserID int64, req dto.CreateSSHKeyRequest) (*dto.SSHKey, error) {
	var out dto.SSHKey
	if err := c.do(ctx, sudoUserID, http.MethodPost, "/user/keys", req, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("%w: POST /user/keys: missing id", ErrMalformedResponse)
	}
	return &out, nil
}

// DeleteSSHKey は sudoUserID のユーザーとして DELETE /user/keys/{id} を呼び出します。
func (c *Client) DeleteSSHKey(ctx context.Context, sudoUserID, keyID int64) error {
	return c.do(ctx, sudoUserID, http.MethodDelete, "/user/keys/"+strconv.FormatInt(keyID, 10), nil, nil)
}

// do はリクエストを送信し、2xxの場合は out にデコードします。
// sudoUserID が0以外の場合はそのユーザーとして実行します。
// 4xx/5xx は *APIError、ボディの形式不正は ErrMalformedResponse をラップしたエラーを返します。
func (c *Client) do(ctx context.Context, sudoUserID int64, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("gitlab %s %s: %w", method, path, err)
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode gitlab request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("PRIVATE-TOKEN", c.cfg.AdminToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sudoUserID != 0 {
		req.Header.Set("Sudo", strconv.FormatInt(sudoUserID, 10))
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gitlab %s %s: %w", method, path, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("gitlab %s %s: read body: %w", method, path, err)
	}

	if res.StatusCode >= 400 {
		slog.Debug("gitlab error response", "method", method, "path", path, "status", res.StatusCode)
		return &APIError{Method: method, Path: path, StatusCode: res.StatusCode, Body: raw}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}
