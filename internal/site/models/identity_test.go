package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityKey(t *testing.T) {
	en := Identity{Code: "en", Family: "wikipedia"}
	de := Identity{Code: "de", Family: "wikipedia"}

	assert.Equal(t, "wikipedia:en", en.String())
	assert.Equal(t, "wikipedia:en", en.Key())

	assert.True(t, en.Equal(Identity{Code: "en", Family: "wikipedia", Obsolete: true}),
		"obsolete flag is not part of the identity key")
	assert.False(t, en.Equal(de))
	assert.False(t, en.Equal(Identity{Code: "en", Family: "wikisource"}))

	assert.True(t, de.Less(en))
	assert.True(t, en.Less(Identity{Code: "en", Family: "wikisource"}))
}

func TestIdentityJSONRoundTrip(t *testing.T) {
	original := Identity{Code: "mo", Family: "wikipedia", Obsolete: true}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Identity
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, original, restored)
}

func TestUnknownSiteError(t *testing.T) {
	err := &UnknownSiteError{Code: "xx", Family: "wikipedia"}
	assert.Equal(t, `language "xx" does not exist in family wikipedia`, err.Error())
}
