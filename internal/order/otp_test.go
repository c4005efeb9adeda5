package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9][0-9]{5}$`, otp)
		seen[otp] = true
	}
	// 20 draws from a 900k space colliding down to one value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestHashAndVerifyOTP(t *testing.T) {
	hash, err := hashOTP("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, verifyOTP("123456", hash))
	assert.False(t, verifyOTP("654321", hash))
}

func TestValidOTPFormat(t *testing.T) {
	assert.True(t, validOTPFormat("123456"))
	assert.True(t, validOTPFormat("000000"))
	assert.False(t, validOTPFormat("12345"))
	assert.False(t, validOTPFormat("1234567"))
	assert.False(t, validOTPFormat("12345a"))
	assert.False(t, validOTPFormat(""))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}
