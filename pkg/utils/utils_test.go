package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("reader@example.com"))
	assert.True(t, IsValidEmail("first.last+blog@mail.example.org"))
	assert.False(t, IsValidEmail("reader@"))
	assert.False(t, IsValidEmail("no-at-sign.example.com"))
	assert.False(t, IsValidEmail("a b@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestCryptAndVerify(t *testing.T) {
	hashed, err := Crypt("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hashed)

	err, ok := VerifyPassword("s3cret-pass", hashed)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok = VerifyPassword("wrong", hashed)
	assert.False(t, ok)
}

func TestParseOptionalID(t *testing.T) {
	id, err := ParseOptionalID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseOptionalID("0")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseOptionalID("42")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(42), *id)

	_, err = ParseOptionalID("abc")
	assert.Error(t, err)
}

func TestNormalizePage(t *testing.T) {
	n, s := NormalizePage(0, 0)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(20), s)

	_, s = NormalizePage(3, 1000)
	assert.Equal(t, int64(100), s)
	assert.Equal(t, 200, Offset(3, 100))
}

func TestGravatarURL(t *testing.T) {
	a := GravatarURL(" Reader@Example.com ", 0)
	b := GravatarURL("reader@example.com", 48)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "s=48")
}
