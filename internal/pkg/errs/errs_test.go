package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipmentId", "123")

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("shipmentId", "123", cause)

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipmentId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("lineId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("tagId")

		assert.Equal(t, "tagId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: tagId", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("tagId", cause)

		assert.Equal(t, "tagId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: tagId (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("sku")

		assert.Equal(t, "sku", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: sku", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("sku", cause)

		assert.Equal(t, "sku", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: sku (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrInsufficientReserved)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "insufficient reserved", errs.ErrInsufficientReserved.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("shipmentId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("tagId")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("sku")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		transitionErr := errs.NewInvalidTransitionError("shipment", "pick", "DELIVERED")
		require.ErrorIs(t, transitionErr, errs.ErrInvalidTransition)

		shortErr := errs.NewInsufficientReservedError("s-1", nil)
		require.ErrorIs(t, shortErr, errs.ErrInsufficientReserved)
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("shipment", "dispatch", "CREATED")

	assert.Equal(t, "shipment", err.Entity)
	assert.Equal(t, "dispatch", err.Action)
	assert.Equal(t, "CREATED", err.Status)
	assert.Equal(t, "invalid transition: cannot dispatch shipment in status CREATED", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestInsufficientReservedError(t *testing.T) {
	err := errs.NewInsufficientReservedError("s-1", []errs.Shortage{
		{SKU: "SKU-A", Requested: 10, Reserved: 6},
		{SKU: "SKU-B", Requested: 2, Reserved: 0},
	})

	assert.Equal(t,
		"insufficient reserved: shipment s-1 is short on SKU-A (reserved 6 of 10), SKU-B (reserved 0 of 2)",
		err.Error())
	assert.Len(t, err.Shortages, 2)
	assert.Equal(t, errs.ErrInsufficientReserved, err.Unwrap())
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected errs.Kind
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "not found", err: errs.NewObjectNotFoundError("shipment", "s-1"), expected: errs.KindNotFound},
		{
			name:     "invalid transition",
			err:      errs.NewInvalidTransitionError("order", "approve", "ALLOCATED"),
			expected: errs.KindInvalidTransition,
		},
		{
			name:     "insufficient reserved",
			err:      errs.NewInsufficientReservedError("s-1", nil),
			expected: errs.KindInsufficientReserved,
		},
		{name: "required", err: errs.NewValueIsRequiredError("sku"), expected: errs.KindValidation},
		{name: "invalid", err: errs.NewValueIsInvalidError("qty"), expected: errs.KindValidation},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("qty", 0, 1, 10), expected: errs.KindValidation},
		{
			name:     "wrapped",
			err:      fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", "o-1")),
			expected: errs.KindNotFound,
		},
		{
			name:     "joined validation",
			err:      errors.Join(errs.NewValueIsRequiredError("sku"), errs.NewValueIsInvalidError("qty")),
			expected: errs.KindValidation,
		},
		{name: "unknown", err: errors.New("connection reset"), expected: errs.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.KindOf(tc.err))
		})
	}
}
