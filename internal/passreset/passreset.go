// Package passreset implements the forgot-password flow: an opaque reset
// token is mailed to the customer as a link, verified by the reset page, and
// redeemed exactly once when the new password is submitted.
package passreset

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/mailer"
)

// ErrTokenInvalid is returned for unknown, already-used, or expired tokens.
var ErrTokenInvalid = errors.New("reset token invalid or expired")

// Token is a pending password-reset grant for one email address. A new
// request replaces any earlier token for the same address.
type Token struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Store persists pending tokens.
type Store interface {
	// Put saves t, replacing any existing token for the same email.
	Put(ctx context.Context, t Token) error
	// Get returns the pending token without consuming it, or
	// ErrTokenInvalid when none exists.
	Get(ctx context.Context, token string) (*Token, error)
	// Take returns and removes the pending token, or ErrTokenInvalid when
	// none exists.
	Take(ctx context.Context, token string) (*Token, error)
}

// Service issues, verifies and redeems reset tokens.
type Service struct {
	store    Store
	mailer   mailer.Mailer
	ttl      time.Duration
	linkBase string
}

// NewService creates a password-reset service. Tokens expire after ttl;
// linkBase is the frontend origin the emailed reset link points at.
func NewService(store Store, m mailer.Mailer, ttl time.Duration, linkBase string) *Service {
	return &Service{store: store, mailer: m, ttl: ttl, linkBase: linkBase}
}

// Request mints a fresh token for email, stores it and mails the reset link.
// The caller is responsible for checking that the address belongs to a
// customer first.
func (s *Service) Request(ctx context.Context, email string) error {
	token, err := generateToken()
	if err != nil {
		return errors.Wrap(err, "generate token")
	}

	if err := s.store.Put(ctx, Token{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
	}); err != nil {
		return errors.Wrap(err, "store token")
	}

	link := s.linkBase + "/reset-password/" + token
	body := fmt.Sprintf(
		`<p>We received a request to reset your password.</p><p><a href="%s">Reset your password</a></p><p>The link expires in %d minutes. If you did not request this, ignore this email.</p>`,
		link, int(s.ttl.Minutes()),
	)
	if err := s.mailer.Send(ctx, email, "Reset your password", body); err != nil {
		return errors.Wrap(err, "send reset link")
	}
	return nil
}

// Verify reports whether the token is pending and unexpired. The token stays
// valid: the reset page calls this before showing the form.
func (s *Service) Verify(ctx context.Context, token string) error {
	t, err := s.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if time.Now().After(t.ExpiresAt) {
		return ErrTokenInvalid
	}
	return nil
}

// Redeem consumes the token and returns the email address it was issued for.
// Tokens are single-use: a redeemed or expired token cannot be redeemed again.
func (s *Service) Redeem(ctx context.Context, token string) (string, error) {
	t, err := s.store.Take(ctx, token)
	if err != nil {
		return "", err
	}
	if time.Now().After(t.ExpiresAt) {
		return "", ErrTokenInvalid
	}
	return t.Email, nil
}

// generateToken returns a 64-character random hex string.
func generateToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
