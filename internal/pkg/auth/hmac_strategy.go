package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HMACStrategy signs "<user>.<expiry>" payloads with HMAC-SHA256.
// Tokens use URL-safe base64 so they can travel in cookies unescaped.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl(), now: time.Now}
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d.%d", userID, expires)
	return encodeSegment(payload) + "." + s.sign(payload), nil
}

// ParseToken validates token and returns encoded user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidToken
	}
	payload := string(raw)
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	userPart, expiresPart, ok := strings.Cut(payload, ".")
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(expiresPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeSegment(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}
