// Package errors_test provides tests for the application error taxonomy.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
)

func TestAppError_WrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.ErrUpstreamUnavailable("AI service unavailable").WithCause(cause)

	assert.Equal(t, constants.ErrCodeUpstreamUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrMissingField_CarriesDetail(t *testing.T) {
	err := errors.ErrMissingField("newCategoryId")

	assert.Equal(t, constants.ErrCodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "newCategoryId")
	assert.Equal(t, "required", err.Details["newCategoryId"])
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := errors.ErrValidation("bad request")
	derived := base.WithDetail("field", "reason")

	assert.Empty(t, base.Details)
	assert.Equal(t, "reason", derived.Details["field"])
}

func TestAsAppError_PassesThrough(t *testing.T) {
	original := errors.ErrRateLimited()
	assert.Same(t, original, errors.AsAppError(original))
}

func TestAsAppError_UnwrapsNestedAppError(t *testing.T) {
	inner := errors.ErrNotFound("transaction")
	wrapped := fmt.Errorf("while resolving: %w", inner)

	got := errors.AsAppError(wrapped)
	assert.Equal(t, constants.ErrCodeNotFound, got.Code)
}

func TestAsAppError_WrapsUnknownAsInternal(t *testing.T) {
	got := errors.AsAppError(stderrors.New("boom"))

	assert.Equal(t, constants.ErrCodeInternal, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", errors.ErrStorageFailure(stderrors.New("disk full")))

	assert.True(t, errors.HasCode(err, constants.ErrCodeStorageFailure))
	assert.False(t, errors.HasCode(err, constants.ErrCodeValidation))
	assert.False(t, errors.HasCode(nil, constants.ErrCodeValidation))
}

func TestErrRateLimited_Shape(t *testing.T) {
	err := errors.ErrRateLimited()

	require.NotNil(t, err)
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.Equal(t, constants.ErrCodeRateLimited, err.Code)
}
