// Package otp issues and checks the one-time codes used to verify a
// customer's email address before checkout.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-faster/errors"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/mailer"
)

// Sentinel errors for code verification.
var (
	ErrCodeMismatch = errors.New("verification code does not match")
	ErrCodeExpired  = errors.New("verification code expired")
)

// Code is a pending verification code for one email address. A new code
// replaces any earlier one for the same address.
type Code struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Store persists pending codes.
type Store interface {
	// Put saves c, replacing any existing code for the same email.
	Put(ctx context.Context, c Code) error
	// Take returns and removes the pending code for email, or
	// ErrCodeMismatch when none exists.
	Take(ctx context.Context, email string) (*Code, error)
}

// Service generates, delivers and verifies codes.
type Service struct {
	store  Store
	mailer mailer.Mailer
	ttl    time.Duration
}

// NewService creates an OTP service. Codes expire after ttl.
func NewService(store Store, m mailer.Mailer, ttl time.Duration) *Service {
	return &Service{store: store, mailer: m, ttl: ttl}
}

// Send generates a fresh six-digit code for email, stores it and delivers
// it over SMTP.
func (s *Service) Send(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return errors.Wrap(err, "generate code")
	}

	if err := s.store.Put(ctx, Code{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	}); err != nil {
		return errors.Wrap(err, "store code")
	}

	body := fmt.Sprintf(
		`<p>Your verification code is <strong style="font-size: 20px;">%s</strong>.</p><p>It expires in %d minutes.</p>`,
		code, int(s.ttl.Minutes()),
	)
	if err := s.mailer.Send(ctx, email, "Email verification code", body); err != nil {
		return errors.Wrap(err, "send code")
	}
	return nil
}

// Verify consumes the pending code for email and compares it against the
// submitted value. Codes are single-use: a failed comparison also burns the
// stored code, so a fresh one must be requested.
func (s *Service) Verify(ctx context.Context, email, submitted string) error {
	c, err := s.store.Take(ctx, email)
	if err != nil {
		return err
	}
	if time.Now().After(c.ExpiresAt) {
		return ErrCodeExpired
	}
	if c.Code != submitted {
		return ErrCodeMismatch
	}
	return nil
}

// generateCode returns a uniformly random six-digit decimal string.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
