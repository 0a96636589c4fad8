package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAll(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, TrimAll([]string{" http://a", "", "  ", "http://b "}))
	assert.Nil(t, TrimAll(nil))
}
