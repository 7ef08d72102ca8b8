package secret

import (
	"encoding/base64"
	"fmt"
)

// MinSigningKeyLength is the minimum decoded length of the session signing key in bytes
const MinSigningKeyLength = 32

// DecodeSigningKey decodes the base64 representation of the session signing secret and verifies its length.
// A secret that cannot be decoded or that is too short has to refuse process startup rather than weaken every issued token.
func DecodeSigningKey(raw string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("session signing secret is no valid base64: %w", err)
	}
	if len(key) < MinSigningKeyLength {
		return nil, fmt.Errorf("session signing secret is too short (%d < %d bytes)", len(key), MinSigningKeyLength)
	}
	return key, nil
}
