package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code := GenerateOTP(length)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, code)
		}
	}
}

func TestGenerateOTPDefaultLength(t *testing.T) {
	assert.Len(t, GenerateOTP(0), 6)
	assert.Len(t, GenerateOTP(-3), 6)
}

func TestNewChallenge(t *testing.T) {
	code, expiry := NewChallenge(6, 10*time.Minute)
	assert.Len(t, code, 6)
	assert.True(t, expiry.After(time.Now().Add(9*time.Minute)))
	assert.True(t, expiry.Before(time.Now().Add(11*time.Minute)))
}

func TestNewChallengeDefaultTTL(t *testing.T) {
	_, expiry := NewChallenge(6, 0)
	assert.True(t, expiry.After(time.Now().Add(9*time.Minute)))
}

func TestIsOTPExpired(t *testing.T) {
	assert.False(t, IsOTPExpired(time.Now().Add(time.Minute)))
	assert.True(t, IsOTPExpired(time.Now().Add(-time.Millisecond)))
}
