package vanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySourceDrawsFreshKeys(t *testing.T) {
	keys := NewKeySource()

	first, err := keys.Next()
	assert.NoError(t, err)
	second, err := keys.Next()
	assert.NoError(t, err)

	assert.Len(t, first.Serialize(), 32)
	assert.NotEqual(t, first.Serialize(), second.Serialize())
}
