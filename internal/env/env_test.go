package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("CHECKOUT_TEST_STR", "value")

	assert.Equal(t, "value", GetString("CHECKOUT_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetString("CHECKOUT_TEST_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("CHECKOUT_TEST_INT", "42")
	t.Setenv("CHECKOUT_TEST_BAD_INT", "forty-two")

	assert.Equal(t, 42, GetInt("CHECKOUT_TEST_INT", 7))
	assert.Equal(t, 7, GetInt("CHECKOUT_TEST_BAD_INT", 7))
	assert.Equal(t, 7, GetInt("CHECKOUT_TEST_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("CHECKOUT_TEST_TRUE", "1")
	t.Setenv("CHECKOUT_TEST_FALSE", "nope")

	assert.True(t, GetBool("CHECKOUT_TEST_TRUE", false))
	assert.False(t, GetBool("CHECKOUT_TEST_FALSE", true))
	assert.True(t, GetBool("CHECKOUT_TEST_MISSING", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("CHECKOUT_TEST_DUR", "250ms")
	t.Setenv("CHECKOUT_TEST_BAD_DUR", "soon")

	assert.Equal(t, 250*time.Millisecond, GetDuration("CHECKOUT_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("CHECKOUT_TEST_BAD_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("CHECKOUT_TEST_MISSING", time.Second))
}
