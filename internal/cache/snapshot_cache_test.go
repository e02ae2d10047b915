package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	t.Run("well-formed payload round-trips", func(t *testing.T) {
		payload := []byte(`{"cart":{"ring-1":3},"favorites":{"neck-1":true},"user":{"id":"u1","email":"a@b.fi","name":"A"}}`)
		snap := DecodeSnapshot(payload)
		require.NotNil(t, snap)
		assert.Equal(t, 3, snap.Cart["ring-1"])
		assert.True(t, snap.Favorites["neck-1"])
		require.NotNil(t, snap.User)
		assert.Equal(t, "u1", snap.User.ID)
	})

	t.Run("missing user is fine", func(t *testing.T) {
		snap := DecodeSnapshot([]byte(`{"cart":{},"favorites":{}}`))
		require.NotNil(t, snap)
		assert.Nil(t, snap.User)
	})

	t.Run("garbage behaves like nothing persisted", func(t *testing.T) {
		cases := map[string]string{
			"not json":           `{{{{`,
			"json scalar":        `42`,
			"json string":        `"hello"`,
			"json array":         `[1,2,3]`,
			"empty object":       `{}`,
			"cart wrong type":    `{"cart":[1,2],"favorites":{}}`,
			"missing favorites":  `{"cart":{}}`,
			"null cart":          `{"cart":null,"favorites":{}}`,
			"quantities as text": `{"cart":{"a":"two"},"favorites":{}}`,
		}
		for name, payload := range cases {
			assert.Nil(t, DecodeSnapshot([]byte(payload)), name)
		}
	})
}
