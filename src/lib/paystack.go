package lib

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"os"
)

// VerifyPaystackSignature checks the x-paystack-signature header: a
// hex-encoded HMAC-SHA512 of the raw request body under the shared
// secret. The comparison is constant-time; the computed signature is
// never returned to callers.
func VerifyPaystackSignature(body []byte, signature string) bool {
	secret := os.Getenv("PAYSTACK_SECRET_KEY")
	return VerifyPaystackSignatureWithSecret(body, signature, secret)
}

func VerifyPaystackSignatureWithSecret(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
