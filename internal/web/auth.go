package web

import (
	"crypto/subtle"

	"github.com/makt28/rowalert/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// KeyVerifier checks the x-api-key header against the configured key.
// A bcrypt hash takes precedence over a plaintext key.
type KeyVerifier struct {
	key  []byte
	hash []byte
}

func NewKeyVerifier(ac config.AuthConfig) *KeyVerifier {
	kv := &KeyVerifier{}
	if ac.APIKeyHash != "" {
		kv.hash = []byte(ac.APIKeyHash)
	} else if ac.APIKey != "" {
		kv.key = []byte(ac.APIKey)
	}
	return kv
}

// Enabled reports whether a key is required. Without one every request is
// accepted.
func (kv *KeyVerifier) Enabled() bool {
	return len(kv.key) > 0 || len(kv.hash) > 0
}

// Verify reports whether presented matches the configured key.
func (kv *KeyVerifier) Verify(presented string) bool {
	if !kv.Enabled() {
		return true
	}
	if presented == "" {
		return false
	}
	if len(kv.hash) > 0 {
		return bcrypt.CompareHashAndPassword(kv.hash, []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare(kv.key, []byte(presented)) == 1
}
