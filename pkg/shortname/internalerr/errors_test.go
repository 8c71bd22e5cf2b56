package internalerr

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryLoadError(t *testing.T) {
	err := NewDictionaryLoadError("dict.csv", fs.ErrNotExist, "open")

	assert.EqualError(t, err, "load dictionary dict.csv: open: file does not exist")
	assert.True(t, errors.Is(err, ErrDictionaryLoad))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var loadErr *DictionaryLoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "dict.csv", loadErr.Source)
}

func TestDictionaryLoadErrorWithoutCause(t *testing.T) {
	err := NewDictionaryLoadError("", nil, "no usable rows")
	assert.EqualError(t, err, "load dictionary: no usable rows")
	assert.True(t, errors.Is(err, ErrDictionaryLoad))
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}
