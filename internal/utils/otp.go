package utils

import (
	"math/rand"
	"strings"
	"time"
)

const otpDigits = "0123456789"

// GenerateOTP returns length independent decimal digits, leading zeros allowed.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(otpDigits[rand.Intn(10)])
	}
	return b.String()
}

// NewChallenge mints a code plus its absolute expiry instant.
func NewChallenge(length int, ttl time.Duration) (code string, expiry time.Time) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return GenerateOTP(length), time.Now().Add(ttl)
}

func IsOTPExpired(expiry time.Time) bool {
	return time.Now().After(expiry)
}
