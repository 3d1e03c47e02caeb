package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// NonceClaims is the signed payload of an action-scoped request nonce.
type NonceClaims struct {
	Action    string `json:"action"`
	ExpiresAt int64  `json:"exp"`
}

// GenerateNonce creates an HMAC-signed nonce bound to a named action.
func GenerateNonce(action string, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required for nonce generation")
	}
	if strings.TrimSpace(action) == "" {
		return "", errors.New("action is required for nonce generation")
	}
	claims := NonceClaims{
		Action:    action,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	sig := mac.Sum(nil)
	token := fmt.Sprintf("%s.%s", base64.RawURLEncoding.EncodeToString(payload), base64.RawURLEncoding.EncodeToString(sig))
	return token, nil
}

// VerifyNonce checks signature, action binding and expiry of a nonce.
func VerifyNonce(token, action, secret string) bool {
	if secret == "" || token == "" {
		return false
	}
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return false
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	sigBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payloadBytes)
	if !hmac.Equal(mac.Sum(nil), sigBytes) {
		return false
	}
	var claims NonceClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return false
	}
	if claims.Action != action {
		return false
	}
	return time.Now().Unix() <= claims.ExpiresAt
}
