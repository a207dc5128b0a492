package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/slumber/internal/apperr"
)

var errTmpl = &apperr.Error{
	Message:  "loading %s failed",
	Code:     apperr.CodeNetwork,
	CanRetry: true,
}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errTmpl.Fmt("rain").Wrap(io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, errTmpl))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "loading rain failed: unexpected EOF", err.Error())
	assert.Equal(t, "loading %s failed", errTmpl.Message)
}

func TestRetryableAndCode(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), errTmpl.Fmt("x"))

	assert.True(t, apperr.Retryable(wrapped))
	assert.Equal(t, apperr.CodeNetwork, apperr.CodeOf(wrapped))
	assert.False(t, apperr.Retryable(io.EOF))
	assert.Equal(t, apperr.Code(""), apperr.CodeOf(io.EOF))
}

func TestDistinctTemplates(t *testing.T) {
	other := &apperr.Error{Message: "loading %s failed", Code: apperr.CodeNetwork}

	assert.False(t, errors.Is(errTmpl.Fmt("a"), other))
}
