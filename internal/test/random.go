package test

import (
	"math/rand/v2"
	"strings"
)

const credentialAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Credentials is a throwaway storefront account.
type Credentials struct {
	Login    string
	Password string
	Email    string
}

// RandomCredentials returns a login, a password long enough for the hasher and
// an email address under example.com.
func RandomCredentials() Credentials {
	login := RandomString(7, 14)
	return Credentials{
		Login:    login,
		Password: RandomString(16, 32),
		Email:    strings.ToLower(login) + "@example.com",
	}
}

// RandomString returns an alphanumeric string with length in [minLen, maxLen].
func RandomString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(credentialAlphabet[rand.IntN(len(credentialAlphabet))])
	}
	return b.String()
}
