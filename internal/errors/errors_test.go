package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeWalletNotFound, "BTC wallet not found", nil)
	assert.Equal(t, CodeWalletNotFound, CodeOf(err))

	wrapped := fmt.Errorf("resolving wallet: %w", err)
	assert.Equal(t, CodeWalletNotFound, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestIsCode(t *testing.T) {
	err := Newf(CodeRateUnavailable, nil, "currency %s not found", "XYZ")

	assert.True(t, IsCode(err, CodeRateUnavailable))
	assert.False(t, IsCode(err, CodeTransport))
	assert.Equal(t, "currency XYZ not found", err.Error())
}

func TestServiceError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New(CodeTransport, "error calling ledger", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}
