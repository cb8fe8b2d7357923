package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	type pair struct {
		A, B string
	}

	assert.NotEqual(t, KeyString(pair{"a b", "c"}), KeyString(pair{"a", "b c"}))
	assert.Equal(t, KeyString(pair{"a", "b"}), KeyString(pair{"a", "b"}))
	assert.NotEqual(t, KeyString[any](1), KeyString[any]("1"))
	assert.NotEqual(t, KeyString[any](int32(1)), KeyString[any](int64(1)))
}
