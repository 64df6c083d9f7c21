// Package payment wraps the Razorpay gateway behind the narrow interface
// the checkout flow consumes.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/go-faster/errors"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

// ErrSignatureMismatch is returned when the provider callback signature does
// not authenticate the transaction.
var ErrSignatureMismatch = errors.New("signature mismatch")

// Compile-time check ensuring Razorpay satisfies the checkout gateway interface.
var _ order.Gateway = (*Razorpay)(nil)

// Razorpay implements the checkout gateway over the Razorpay REST API.
// Signature verification happens locally: the callback signature is the
// HMAC-SHA256 of "<orderID>|<paymentID>" keyed with the API secret.
type Razorpay struct {
	client *razorpay.Client
	secret []byte
}

// NewRazorpay creates a gateway using the given API key pair.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, keySecret),
		secret: []byte(keySecret),
	}
}

// CreateOrder registers a payment intent and returns the provider order ID.
func (r *Razorpay) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (string, error) {
	body, err := r.client.Order.Create(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return "", errors.Wrap(err, "razorpay order create")
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order create: response missing id")
	}
	return id, nil
}

// VerifySignature authenticates the widget callback tokens. The comparison
// is constant-time to avoid leaking signature prefixes.
func (r *Razorpay) VerifySignature(providerOrderID, paymentID, signature string) error {
	if providerOrderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return ErrSignatureMismatch
	}
	return nil
}
