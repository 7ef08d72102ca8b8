package secret

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSigningKey(t *testing.T) {
	t.Parallel()

	raw := base64.StdEncoding.EncodeToString(make([]byte, MinSigningKeyLength))
	key, err := DecodeSigningKey(raw)
	require.NoError(t, err)
	assert.Len(t, key, MinSigningKeyLength)
}

func TestDecodeSigningKey_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeSigningKey("%%% no base64 %%%")
	assert.Error(t, err)

	tooShort := base64.StdEncoding.EncodeToString(make([]byte, MinSigningKeyLength-1))
	_, err = DecodeSigningKey(tooShort)
	assert.Error(t, err)
}
