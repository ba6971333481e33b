package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errTemplate = &Error{Message: "bad value: %d"}
	errOther    = &Error{Message: "other"}
)

func TestFmtMatchesTemplate(t *testing.T) {
	err := errTemplate.Fmt(42)

	assert.Equal(t, "bad value: 42", err.Error())
	assert.ErrorIs(t, err, errTemplate)
	assert.NotErrorIs(t, err, errOther)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")

	err := errOther.Wrap(cause)

	assert.Equal(t, "other: disk full", err.Error())
	assert.ErrorIs(t, err, errOther)
	assert.ErrorIs(t, err, cause)
}

func TestWrappedByFmtErrorf(t *testing.T) {
	err := fmt.Errorf("saving: %w", errTemplate.Fmt(1).Wrap(errors.New("x")))

	assert.ErrorIs(t, err, errTemplate)
}
