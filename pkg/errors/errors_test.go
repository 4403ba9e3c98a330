package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFindsTypedError(t *testing.T) {
	base := New(CodeNotFound, "client not found")
	wrapped := fmt.Errorf("outer: %w", base)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.Equal(t, "client not found", typed.Message())
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	assert.Nil(t, As(fmt.Errorf("plain")))
	assert.Nil(t, As(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "create client")

	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeInternal, nil, "boom")
	require.NotNil(t, err)
	assert.Nil(t, err.Unwrap())
}

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusConflict, MetadataFor(CodeConflict).HTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, MetadataFor(CodeDependency).HTTPStatus)

	// Unknown codes collapse onto internal.
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("nope")).HTTPStatus)
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"shopId": "is required"})
	details, ok := err.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["shopId"])
}

func TestDumpFlattensChain(t *testing.T) {
	cause := fmt.Errorf("driver broke")
	err := Wrap(CodeDependency, cause, "create client")

	dump := Dump(err)
	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Contains(t, dump.TopMessage, "create client")
}
