// Package payment implements the gateway signature check performed before a
// booking is confirmed.  The gateway signs the pair of identifiers it
// returns to the client; the server recomputes the signature with the shared
// secret and accepts the confirmation only on an exact match.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature returns the hex-encoded HMAC-SHA256 of "orderID|paymentID"
// under the shared gateway secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the expected signature and compares it to the
// client-supplied one in constant time.  Empty or missing inputs simply
// produce a signature that cannot match; they are never treated as valid.
func Verify(orderID, paymentID, supplied, secret string) bool {
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
