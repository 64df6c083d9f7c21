package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gw := NewRazorpay("key_id", "key_secret")
	sig := sign("key_secret", "order_abc", "pay_xyz")

	assert.NoError(t, gw.VerifySignature("order_abc", "pay_xyz", sig))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	gw := NewRazorpay("key_id", "key_secret")
	sig := sign("other_secret", "order_abc", "pay_xyz")

	require.ErrorIs(t, gw.VerifySignature("order_abc", "pay_xyz", sig), ErrSignatureMismatch)
}

func TestVerifySignature_TamperedTokens(t *testing.T) {
	gw := NewRazorpay("key_id", "key_secret")
	sig := sign("key_secret", "order_abc", "pay_xyz")

	require.ErrorIs(t, gw.VerifySignature("order_abc", "pay_other", sig), ErrSignatureMismatch)
	require.ErrorIs(t, gw.VerifySignature("order_other", "pay_xyz", sig), ErrSignatureMismatch)
}

func TestVerifySignature_EmptyTokens(t *testing.T) {
	gw := NewRazorpay("key_id", "key_secret")

	require.Error(t, gw.VerifySignature("", "pay_xyz", "sig"))
	require.Error(t, gw.VerifySignature("order_abc", "", "sig"))
	require.Error(t, gw.VerifySignature("order_abc", "pay_xyz", ""))
}
