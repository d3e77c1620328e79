package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/pkg/models"
)

func newTestService(t *testing.T) (*Service, *TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore()
	require.NoError(t, store.SeedDefault())
	tokens := NewTokenStore(client, time.Hour, 24*time.Hour)
	return NewService(store, tokens, nil, time.Hour), tokens
}

// fakeMailer records the last queued message.
type fakeMailer struct {
	sent    int
	to      string
	subject string
	body    string
}

func (m *fakeMailer) SendMail(ctx context.Context, to, subject, body string) error {
	m.sent++
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func TestLoginSeededAccount(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: SeedPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Empty(t, resp.RefreshToken)
	require.Equal(t, "admin", resp.User.Role)
	require.ElementsMatch(t, []string{models.SystemDigital, models.SystemFinance, models.SystemAcademy}, resp.User.Systems)

	user, err := tokens.Validate(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: SeedEmail, Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.EqualError(t, err, "incorrect email or password")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRememberMeIssuesRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: SeedPassword, RememberMe: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	newToken, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newToken)
	require.NotEqual(t, resp.Token, newToken)
}

func TestRegisterNewUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "New User", Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.Equal(t, "user", resp.User.Role)
	require.Equal(t, []string{models.SystemFinance}, resp.User.Systems)
	require.NotEmpty(t, resp.Token)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Dup", Email: SeedEmail, Password: "longenough"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.EqualError(t, err, "email already registered")
}

func TestForgotPasswordMailsResetToken(t *testing.T) {
	svc, _ := newTestService(t)
	mailer := &fakeMailer{}
	svc.mailer = mailer
	ctx := context.Background()

	// Unknown addresses never produce mail.
	require.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	require.Zero(t, mailer.sent)

	require.NoError(t, svc.ForgotPassword(ctx, SeedEmail))
	require.Equal(t, 1, mailer.sent)
	require.Equal(t, SeedEmail, mailer.to)
	require.Equal(t, "Reset your VisionDay password", mailer.subject)

	// The mailed code drives the rest of the reset flow.
	const marker = "password: "
	idx := strings.Index(mailer.body, marker)
	require.GreaterOrEqual(t, idx, 0)
	token := mailer.body[idx+len(marker):]
	if nl := strings.IndexByte(token, '\n'); nl >= 0 {
		token = token[:nl]
	}
	require.True(t, svc.ValidateResetToken(ctx, token))
	require.NoError(t, svc.ResetPassword(ctx, token, "mailed-reset-pass"))

	_, err := svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: "mailed-reset-pass"})
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Forgot never reveals whether the email exists.
	require.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	require.NoError(t, svc.ForgotPassword(ctx, SeedEmail))

	token := svc.store.CreateReset(SeedEmail, time.Hour)
	require.True(t, svc.ValidateResetToken(ctx, token))

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-pass"))

	// Token is single use.
	require.False(t, svc.ValidateResetToken(ctx, token))
	require.ErrorIs(t, svc.ResetPassword(ctx, token, "again"), ErrResetInvalid)

	_, err := svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: SeedPassword})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: "brand-new-pass"})
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, models.LoginRequest{Email: SeedEmail, Password: SeedPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))
	_, err = tokens.Validate(ctx, resp.Token)
	require.Error(t, err)
}
