package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})

	t.Run("wrapped errno keeps code", func(t *testing.T) {
		err := errors.WithMessage(RateLimited, "guest a@b.c")
		assert.Equal(t, RateLimited.ErrCode, ConvertErr(err).ErrCode)
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		got := ConvertErr(errors.New("dial tcp 10.0.0.3:3306: connection refused"))
		assert.Equal(t, PersistenceErr, got)
		assert.NotContains(t, got.ErrMsg, "3306")
	})
}

func TestWithMessageStillMatches(t *testing.T) {
	err := InvalidContent.WithMessage("Comment content cannot be empty")
	assert.True(t, errors.Is(err, InvalidContent))
	assert.False(t, errors.Is(err, InvalidParent))
	assert.Equal(t, "Comment content cannot be empty", ConvertErr(err).ErrMsg)
}
