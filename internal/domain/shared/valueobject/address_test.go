package valueobject

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims and keeps optional fields", func(t *testing.T) {
		addr, err := NewAddress("  123 Main St ", " Springfield ",
			WithState("IL"), WithZipCode(" 62701 "), WithCountry("USA"))
		require.NoError(t, err)
		assert.Equal(t, "123 Main St", addr.Street())
		assert.Equal(t, "Springfield", addr.City())
		assert.Equal(t, "IL", addr.State())
		assert.Equal(t, "62701", addr.ZipCode())
		assert.Equal(t, "USA", addr.Country())
	})

	t.Run("requires street and city", func(t *testing.T) {
		_, err := NewAddress("", "Springfield")
		assert.ErrorContains(t, err, "street")
		_, err = NewAddress("123 Main St", "   ")
		assert.ErrorContains(t, err, "city")
	})

	t.Run("rejects overlong fields", func(t *testing.T) {
		_, err := NewAddress("123 Main St", "Springfield", WithCountry(strings.Repeat("x", 201)))
		assert.ErrorContains(t, err, "country")
	})
}

func TestAddress_Lines(t *testing.T) {
	addr := MustNewAddress("123 Main St", "Springfield", WithState("IL"), WithZipCode("62701"), WithCountry("USA"))
	assert.Equal(t, []string{"123 Main St", "Springfield, IL 62701", "USA"}, addr.Lines())
	assert.Equal(t, "123 Main St, Springfield, IL 62701, USA", addr.String())

	assert.Nil(t, Address{}.Lines())
	assert.True(t, Address{}.IsEmpty())
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	addr, err := NewAddressFull("1 Infinite Loop", "Cupertino", "CA", "95014", "USA")
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"1 Infinite Loop","city":"Cupertino","state":"CA","zipCode":"95014","country":"USA"}`, string(data))

	var back Address
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equals(addr))
}
