package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 24 * time.Hour

// Strategy issues and verifies session tokens carrying a user identifier.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return defaultTTL
	}
	return o.TTL
}
