package gong

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"
)

const (
	headerAccessKey = "X-Gong-AccessKey"
	headerTimestamp = "X-Gong-Timestamp"
	headerSignature = "X-Gong-Signature"
)

// Signer computes the HMAC request signature Gong expects alongside Basic auth.
type Signer struct {
	Key    string
	Secret string
	Now    func() time.Time
}

// NewSigner constructs a signer with the provided key/secret and a UTC clock.
func NewSigner(key, secret string) *Signer {
	return &Signer{
		Key:    key,
		Secret: secret,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Timestamp returns the current signing timestamp in the format the upstream
// expects.
func (s *Signer) Timestamp() string {
	return s.Now().Format(time.RFC3339)
}

// Sign computes base64(HMAC-SHA256(secret, method\npath\ntimestamp\npayload)).
// payload is the JSON-encoded request body or query parameters, empty when the
// request carries neither.
func (s *Signer) Sign(method, path, timestamp, payload string) string {
	stringToSign := strings.Join([]string{method, path, timestamp, payload}, "\n")

	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write([]byte(stringToSign))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
