package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		code, err := GenerateReferralCode()
		assert.NoError(t, err)
		assert.Len(t, code, referralCodeLength)
		assert.Regexp(t, `^[A-Z0-9]+$`, code)

		seen[code] = struct{}{}
	}

	// 36^8 possible codes; 1000 draws colliding means the generator is broken.
	assert.Len(t, seen, 1000)
}
