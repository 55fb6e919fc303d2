package asyncjob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCredentials_CopiesAndIsImmutable(t *testing.T) {
	basic := &BasicAuth{Username: "alice", Password: "secret"}
	signing := &SigningKey{Raw: []byte("key-bytes")}

	creds := NewCredentials(basic, signing)

	basic.Password = "mutated"
	signing.Raw[0] = 'X'

	assert.Equal(t, "secret", creds.Basic.Password)
	assert.Equal(t, []byte("key-bytes"), creds.Signing.Raw)
}

func TestNewCredentials_NilsAreAllowed(t *testing.T) {
	creds := NewCredentials(nil, nil)
	assert.Nil(t, creds.Basic)
	assert.Nil(t, creds.Signing)
}
