// Package errors_test covers the AppError type, its factories and the
// error-chain helpers.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/entitylens/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"unknown tag", errors.ErrCodeUnknownTag, "no color for tag FOO"},
		{"out of bounds", errors.ErrCodeSpanOutOfBounds, "entity ends past text"},
		{"invalid param", errors.CodeInvalidParam, "text must not be empty"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNewf_FormatsMessage(t *testing.T) {
	t.Parallel()

	ae := errors.Newf(errors.ErrCodeSpanOutOfBounds, "entity at %d ends at %d", 4, 12)
	assert.Equal(t, "entity at 4 ends at 12", ae.Message)
}

func TestNew_StackIsPopulated(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	assert.Contains(t, ae.Stack, "errors_test.go")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError
// ─────────────────────────────────────────────────────────────────────────────

func TestError_Format(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeUnknownTag, "no color for tag")
	assert.Equal(t, "[REN_001] no color for tag", ae.Error())

	withDetail := ae.WithDetail("tag=FOO")
	assert.Equal(t, "[REN_001] no color for tag: tag=FOO", withDetail.Error())

	withCause := withDetail.WithCause(fmt.Errorf("boom"))
	assert.Equal(t, "[REN_001] no color for tag: tag=FOO: boom", withCause.Error())
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "msg")
	_ = ae.WithDetail("x")
	assert.Empty(t, ae.Detail)
}

func TestWithDetail_NilReceiver(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(fmt.Errorf("x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should not matter"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("root cause")
	wrapped := errors.Wrap(root, errors.ErrCodeTokenDecode, "decode tokens")

	require.NotNil(t, wrapped)
	assert.True(t, stderrors.Is(wrapped, root))
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeUnknownTag, "inner")
	outer := errors.Wrap(inner, errors.CodeUnknown, "outer")

	assert.Equal(t, errors.ErrCodeUnknownTag, outer.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_FindsNestedCode(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeSpanOutOfBounds, "inner")
	outer := errors.Wrap(inner, errors.ErrCodeRenderFailed, "outer")
	std := fmt.Errorf("context: %w", outer)

	assert.True(t, errors.IsCode(std, errors.ErrCodeRenderFailed))
	assert.True(t, errors.IsCode(std, errors.ErrCodeSpanOutOfBounds))
	assert.False(t, errors.IsCode(std, errors.ErrCodeUnknownTag))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeUnknownTag))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.New(errors.CodeNotFound, "palette")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeConfigNotFound, "cfg")))
	assert.False(t, errors.IsNotFound(errors.New(errors.ErrCodeInternal, "x")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeUnknownTag, errors.GetCode(fmt.Errorf("w: %w", errors.New(errors.ErrCodeUnknownTag, "x"))))
}

func TestExitStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.ExitOK, errors.ExitStatus(nil))
	assert.Equal(t, errors.ExitUsage, errors.ExitStatus(errors.InvalidParam("bad")))
	assert.Equal(t, errors.ExitInternal, errors.ExitStatus(errors.New(errors.ErrCodeInternal, "bug")))
	assert.Equal(t, errors.ExitFailure, errors.ExitStatus(stderrors.New("plain")))
}

func TestNewValidationError_CarriesField(t *testing.T) {
	t.Parallel()

	ae := errors.NewValidationError("render.format", "unsupported format")
	assert.Equal(t, errors.ErrCodeValidation, ae.Code)
	assert.True(t, strings.Contains(ae.Error(), "field=render.format"))
}
