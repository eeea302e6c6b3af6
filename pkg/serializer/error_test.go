package serializer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	a := assert.New(t)
	raw := errors.New("disk I/O error")

	err := NewError(CodeDBError, "Failed to create folder", raw)
	a.Equal("Failed to create folder: disk I/O error", err.Error())
	a.ErrorIs(err, raw)

	bare := NewError(CodeEmptyName, "Folder name cannot be empty", nil)
	a.Equal("Folder name cannot be empty", bare.Error())

	re := bare.WithError(raw)
	a.Equal(CodeEmptyName, re.Code)
	a.ErrorIs(re, raw)
}

func TestCodeOf(t *testing.T) {
	a := assert.New(t)
	a.Equal(CodeNotFound, CodeOf(NewError(CodeNotFound, "x", nil)))
	a.Equal(CodeNotFound, CodeOf(fmt.Errorf("wrapped: %w", NewError(CodeNotFound, "x", nil))))
	a.Equal(0, CodeOf(errors.New("plain")))
	a.Equal(0, CodeOf(nil))
}
