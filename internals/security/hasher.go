package security

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// KeyParams are the argon2id parameters used for webhook API keys.
var KeyParams = argon2id.DefaultParams

// HashAPIKey returns an argon2id hash suitable for webhook.api_key_hashes.
func HashAPIKey(key string, params *argon2id.Params) (string, error) {
	if key == "" {
		return "", errors.New("empty api key")
	}
	if params == nil {
		params = KeyParams
	}
	return argon2id.CreateHash(key, params)
}

// KeyVerifier checks presented API keys against a set of argon2id hashes.
type KeyVerifier struct {
	hashes []string
}

func NewKeyVerifier(hashes []string) *KeyVerifier {
	return &KeyVerifier{hashes: hashes}
}

// Verify reports whether key matches any configured hash. Malformed hashes
// never match.
func (v *KeyVerifier) Verify(key string) bool {
	if key == "" {
		return false
	}
	for _, h := range v.hashes {
		ok, err := argon2id.ComparePasswordAndHash(key, h)
		if err == nil && ok {
			return true
		}
	}
	return false
}
