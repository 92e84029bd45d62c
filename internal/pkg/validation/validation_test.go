package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedMediaType(t *testing.T) {
	assert.True(t, IsSupportedMediaType("image/jpeg"))
	assert.True(t, IsSupportedMediaType("image/png"))
	assert.True(t, IsSupportedMediaType("image/webp"))
	assert.True(t, IsSupportedMediaType("IMAGE/PNG"))
	assert.True(t, IsSupportedMediaType("image/png; charset=binary"))

	assert.False(t, IsSupportedMediaType("image/gif"))
	assert.False(t, IsSupportedMediaType("application/pdf"))
	assert.False(t, IsSupportedMediaType(""))
}

func TestIsValidArea(t *testing.T) {
	assert.True(t, IsValidArea(0.01))
	assert.True(t, IsValidArea(1000))

	assert.False(t, IsValidArea(0))
	assert.False(t, IsValidArea(-1))
	assert.False(t, IsValidArea(math.NaN()))
	assert.False(t, IsValidArea(math.Inf(1)))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a b@example.com"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("abc123!xyz"))
	assert.False(t, IsValidPassword("short1!"))
	assert.False(t, IsValidPassword("password"))
	assert.False(t, IsValidPassword("12345678!"))
}
