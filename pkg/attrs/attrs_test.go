package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	kv := []any{"family", "wikipedia", "count", 3, "detail", "da"}

	assert.Equal(t, "da", ExtractString(kv, "detail"))
	assert.Equal(t, "wikipedia", ExtractString(kv, "family"))
	assert.Equal(t, "", ExtractString(kv, "count"), "non-string values are skipped")
	assert.Equal(t, "", ExtractString(kv, "missing"))
	assert.Equal(t, "", ExtractString(nil, "detail"))
	assert.Equal(t, "", ExtractString([]any{"dangling"}, "dangling"))
}
