package order

import (
	"crypto/rand"
	"math/big"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// DevBypassOTP is the fixed development shortcut. It is honored only
// when the config flag enables it; see Service.Complete.
const DevBypassOTP = "000000"

var otpFormat = regexp.MustCompile(`^[0-9]{6}$`)

// generateOTP returns a random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}

// hashOTP stores only a one-way hash of the code; the raw value is never
// persisted.
func hashOTP(raw string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(bytes), err
}

// verifyOTP compares without early exit on mismatched prefixes.
func verifyOTP(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

func validOTPFormat(raw string) bool {
	return otpFormat.MatchString(raw)
}
