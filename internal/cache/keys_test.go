package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysShareNamespace(t *testing.T) {
	assert.True(t, strings.HasPrefix(ListKey(), Namespace))
	assert.True(t, strings.HasPrefix(DetailKey("PROP1001"), Namespace))
	assert.True(t, strings.HasPrefix(SearchKey("city=Pune"), Namespace))
}

func TestDetailKeyEmbedsID(t *testing.T) {
	assert.Equal(t, "property:detail:PROP1042", DetailKey("PROP1042"))
}

func TestSearchKeyDeterministic(t *testing.T) {
	a := SearchKey("city=Delhi&type=Villa")
	b := SearchKey("city=Delhi&type=Villa")
	c := SearchKey("city=Delhi")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// sha1 hex digest after the prefix
	assert.Len(t, strings.TrimPrefix(a, "property:search:"), 40)
}
