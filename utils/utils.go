package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/stretchr/testify/assert"
)

// codeAlphabet avoids 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateReferralCode generates a random personal code of the given length.
func CreateReferralCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NormalizeCode lowers and trims a code for case-insensitive comparison.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func StringPtr(s string) *string {
	return &s
}

func UintPtr(v uint) *uint {
	return &v
}

func IntPtr(v int) *int {
	return &v
}

func BoolPtr(v bool) *bool {
	return &v
}

// AssertEqualNilable compares two pointer values treating nil==nil as equal.
func AssertEqualNilable[T comparable](t assert.TestingT, expected, actual *T, msgAndArgs ...interface{}) {
	if expected == nil && actual == nil {
		return
	}
	if expected == nil || actual == nil {
		assert.Fail(t, "one value is nil while the other is not", msgAndArgs...)
		return
	}
	assert.Equal(t, *expected, *actual, msgAndArgs...)
}

// AssertEqualIfExpectedNotNil asserts equality only when an expectation was
// supplied.
func AssertEqualIfExpectedNotNil[T comparable](t assert.TestingT, expected *T, actual T, msgAndArgs ...interface{}) {
	if expected == nil {
		return
	}
	assert.Equal(t, *expected, actual, msgAndArgs...)
}
