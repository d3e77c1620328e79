package client

import (
	"context"
	"net/http"

	"github.com/visionday/hub/internal/session"
	"github.com/visionday/hub/pkg/models"
)

// AuthAPI wraps the authentication endpoints and keeps the session
// store in sync with their results.
type AuthAPI struct {
	c *Client
}

// Login authenticates and persists the returned tokens and user.
func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var resp models.LoginResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp, false); err != nil {
		return nil, err
	}
	if err := a.c.session.Save(session.State{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         &resp.User,
	}); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account and logs it in.
func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var resp models.LoginResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp, false); err != nil {
		return nil, err
	}
	if err := a.c.session.Save(session.State{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         &resp.User,
	}); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout revokes the server session and clears the local one. The remote
// failure is deliberately swallowed: the user must always be able to log
// out locally, otherwise a dead token would lock them out of logging in
// again. Only a failure to clear the local session is reported.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_ = a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, true)
	return a.c.session.Clear()
}

// ForgotPassword requests a reset link. The server reports success
// regardless of whether the email exists.
func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) error {
	req := models.ForgotPasswordRequest{Email: email}
	return a.c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, req, nil, false)
}

// ValidateResetToken checks whether a reset token is still usable.
func (a *AuthAPI) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	var out models.ResetTokenValidity
	if err := a.c.do(ctx, http.MethodGet, "/auth/validate-reset-token/"+token, nil, nil, &out, false); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// ResetPassword sets a new password using a reset token.
func (a *AuthAPI) ResetPassword(ctx context.Context, token, password string) error {
	req := models.ResetPasswordRequest{Token: token, Password: password}
	return a.c.do(ctx, http.MethodPost, "/auth/reset-password", nil, req, nil, false)
}

// Refresh exchanges the stored refresh token for a new access token.
func (a *AuthAPI) Refresh(ctx context.Context) error {
	refresh := a.c.session.RefreshToken()
	if refresh == "" {
		return ErrNotAuthenticated
	}
	var resp models.RefreshResponse
	req := models.RefreshRequest{RefreshToken: refresh}
	if err := a.c.do(ctx, http.MethodPost, "/auth/refresh", nil, req, &resp, false); err != nil {
		return err
	}
	return a.c.session.Save(session.State{
		Token:        resp.Token,
		RefreshToken: refresh,
		User:         a.c.session.User(),
	})
}

// CurrentUser returns the locally stored user without a network call.
func (a *AuthAPI) CurrentUser() *models.User {
	return a.c.session.User()
}

// ChooseSystem records the selected system on the local session. The
// choice must be one of the systems granted to the user.
func (a *AuthAPI) ChooseSystem(system string) error {
	u := a.c.session.User()
	if u == nil {
		return ErrNotAuthenticated
	}
	if !u.HasSystem(system) {
		return &APIError{Status: http.StatusForbidden, Message: "you do not have access to this system"}
	}
	u.CurrentSystem = system
	return a.c.session.SetUser(u)
}
