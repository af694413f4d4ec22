package vanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenLifecycle(t *testing.T) {
	token := NewToken()
	assert.False(t, token.Stopped())

	token.Stop()
	assert.True(t, token.Stopped())

	// Level-triggered and idempotent.
	token.Stop()
	assert.True(t, token.Stopped())

	token.Reset()
	assert.False(t, token.Stopped())
}
