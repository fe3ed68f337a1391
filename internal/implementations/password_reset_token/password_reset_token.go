package passwordresettoken

import (
	"crypto/rand"
	"encoding/hex"
	"passreset/internal/core/domain/user"
)

// tokenByteLength gives 256 bits of randomness per token, rendered as a
// fixed-length 64-character hex string.
const tokenByteLength = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, tokenByteLength)
	if _, err := rand.Read(b); err != nil {
		return user.PasswordResetToken(""), err
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
