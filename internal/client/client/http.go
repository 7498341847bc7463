package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// Fallback messages used when a rejection carries no text.
const (
	msgSignupFailed  = "Signup failed. Please try again."
	msgInvalidOTP    = "Invalid OTP. Please try again."
	msgLoginFailed   = "Login failed. Please try again."
	msgSendOTPFailed = "Failed to send OTP. Please try again."
	msgResetFailed   = "Failed to reset password. Please try again."
	msgProfileLoad   = "Failed to load profile"
	msgProfileUpdate = "Failed to update profile"
)

// HTTPClient talks JSON to the account service under one base URL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// envelope is the union of every response shape the service produces.
// Login puts token and user at the top level; verify-otp nests them in data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
}

type sessionPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// NewHTTPClient validates baseURL (e.g. "http://localhost:5000/api") and
// builds a client whose requests time out after timeout (0 means never).
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid server base URL %q: want http(s)://host[/prefix]", baseURL)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "http-client"),
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping reports whether the service answers HTTP at all; any status counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, r models.SignupRequest) (string, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/auth/signup", "", r)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", rejection(status, env.Message, msgSignupFailed)
	}
	return env.Message, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (*models.Session, error) {
	body := map[string]string{"email": email, "otp": otp}
	env, status, err := c.do(ctx, http.MethodPost, "/auth/verify-otp", "", body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejection(status, env.Message, msgInvalidOTP)
	}
	s, err := env.session()
	if err != nil {
		return nil, fmt.Errorf("%w: verify-otp response: %v", ErrUnavailable, err)
	}
	return s, nil
}

// Login accepts the response whenever it carries both token and user,
// whatever its success flag says.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	env, status, err := c.do(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return nil, err
	}
	s, serr := env.session()
	if serr == nil {
		return s, nil
	}
	if env.Success {
		return nil, fmt.Errorf("%w: login response: %v", ErrUnavailable, serr)
	}
	return nil, rejection(status, env.Message, msgLoginFailed)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", rejection(status, env.Message, msgSendOTPFailed)
	}
	return env.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	env, status, err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", body)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", rejection(status, env.Message, msgResetFailed)
	}
	return env.Message, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.User, error) {
	env, status, err := c.do(ctx, http.MethodGet, "/user/profile", token, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejection(status, env.Message, msgProfileLoad)
	}
	return env.user()
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	env, status, err := c.do(ctx, http.MethodPut, "/user/profile", token, upd)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, rejection(status, env.Message, msgProfileUpdate)
	}
	return env.user()
}

// do sends one JSON request. A non-empty token marks the call as
// authenticated: a 401/403 then becomes ErrUnauthorized instead of a
// business rejection.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	log.Debug(ctx, "response received", "status", resp.StatusCode, "elapsed", time.Since(started))

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		msg := "session expired or invalid"
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	if decodeErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: malformed response (status %d)", ErrUnavailable, resp.StatusCode)
	}
	return &env, resp.StatusCode, nil
}

func rejection(status int, msg, fallback string) error {
	if strings.TrimSpace(msg) == "" {
		msg = fallback
	}
	return &RemoteError{Status: status, Message: msg}
}

func (e *envelope) session() (*models.Session, error) {
	if hasData(e.Data) {
		var p sessionPayload
		if err := json.Unmarshal(e.Data, &p); err == nil && (p.Token != "" || p.User != nil) {
			return models.NewSession(p.Token, p.User)
		}
	}
	return models.NewSession(e.Token, e.User)
}

func (e *envelope) user() (*models.User, error) {
	if !hasData(e.Data) {
		return nil, fmt.Errorf("%w: response has no user", ErrUnavailable)
	}
	var u models.User
	if err := json.Unmarshal(e.Data, &u); err != nil {
		return nil, fmt.Errorf("%w: malformed user: %v", ErrUnavailable, err)
	}
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, models.ErrInvalidUser)
	}
	return &u, nil
}

func hasData(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// IsTransport reports whether err is a connectivity failure rather than a
// decision made by the service.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
