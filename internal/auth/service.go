package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/visionday/hub/pkg/models"
)

// Errors surfaced to clients verbatim. Login failures never reveal whether
// the email or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResetInvalid       = errors.New("reset link is invalid or expired")
	ErrRefreshExpired     = errors.New("session expired, please log in again")
)

// Mailer queues outbound transactional mail. The jobs client satisfies it.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// Service wraps authentication business rules.
type Service struct {
	store    *Store
	tokens   *TokenStore
	mailer   Mailer
	resetTTL time.Duration
}

// NewService constructs a Service. mailer may be nil, in which case reset
// tokens are issued but not delivered.
func NewService(store *Store, tokens *TokenStore, mailer Mailer, resetTTL time.Duration) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer, resetTTL: resetTTL}
}

// Login validates credentials and issues tokens. A refresh token is issued
// only when the caller asked to be remembered.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	acc, ok := s.store.FindByEmail(req.Email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, acc.User)
	if err != nil {
		return nil, err
	}
	resp := &models.LoginResponse{Token: token, User: acc.User}
	if req.RememberMe {
		refresh, err := s.tokens.IssueRefresh(ctx, acc.User)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = refresh
	}
	return resp, nil
}

// Register creates a new account with the default user role and finance
// access, then logs it in.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acc := &Account{
		User: models.User{
			ID:      uuid.NewString(),
			Name:    req.Name,
			Email:   req.Email,
			Role:    "user",
			Systems: []string{models.SystemFinance},
		},
		PasswordHash: string(hash),
	}
	if err := s.store.Create(acc); err != nil {
		return nil, ErrEmailTaken
	}

	token, err := s.tokens.Issue(ctx, acc.User)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(ctx, acc.User)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, RefreshToken: refresh, User: acc.User}, nil
}

// ForgotPassword issues a reset token when the account exists and mails it
// to the account address. The endpoint reports success either way so it
// cannot be used to enumerate emails; the returned error is for the caller
// to log, never to surface.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	acc, ok := s.store.FindByEmail(email)
	if !ok {
		return nil
	}
	token := s.store.CreateReset(email, s.resetTTL)
	if s.mailer == nil {
		return nil
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nUse this code to reset your VisionDay password: %s\n\nThe code expires in %s.",
		acc.User.Name, token, s.resetTTL)
	return s.mailer.SendMail(ctx, acc.User.Email, "Reset your VisionDay password", body)
}

// ValidateResetToken reports whether a reset token can still be used.
func (s *Service) ValidateResetToken(ctx context.Context, token string) bool {
	return s.store.ResetValid(token)
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	email, ok := s.store.ConsumeReset(token)
	if !ok {
		return ErrResetInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if !s.store.UpdatePassword(email, string(hash)) {
		return ErrResetInvalid
	}
	return nil
}

// Refresh exchanges a refresh token for a fresh bearer token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.tokens.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return "", ErrRefreshExpired
	}
	return s.tokens.Issue(ctx, *user)
}

// Logout revokes the bearer token. Revocation failures are reported but the
// client clears its local session regardless.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, token)
}
