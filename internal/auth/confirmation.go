package auth

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// CodeConfig parameterizes confirmation-code issuance. Injected from the
// application config rather than living as package state.
type CodeConfig struct {
	Alphabet string
	Length   int
	Sentinel string
}

// Generate draws a fresh random code from the configured alphabet.
func (c CodeConfig) Generate() (string, error) {
	alphabet := []rune(c.Alphabet)
	max := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(c.Length)
	for i := 0; i < c.Length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteRune(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// IsSentinel reports whether code is the "no valid code issued" marker.
func (c CodeConfig) IsSentinel(code string) bool {
	return code == c.Sentinel
}
