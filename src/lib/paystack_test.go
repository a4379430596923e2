package lib

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaystackSignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_001","amount":13000000}}`)

	assert.True(t, VerifyPaystackSignatureWithSecret(body, signBody(body, secret), secret))
	assert.False(t, VerifyPaystackSignatureWithSecret(body, signBody(body, "other-secret"), secret))

	tampered := append([]byte{}, body...)
	tampered[0] = ' '
	assert.False(t, VerifyPaystackSignatureWithSecret(tampered, signBody(body, secret), secret))
}

func TestVerifyPaystackSignatureMissingInputs(t *testing.T) {
	body := []byte(`{}`)
	assert.False(t, VerifyPaystackSignatureWithSecret(body, "", "secret"))
	assert.False(t, VerifyPaystackSignatureWithSecret(body, signBody(body, "secret"), ""))
}
