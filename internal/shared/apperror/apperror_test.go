package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-leave/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("field errors carry the field in details", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.RequiredField("Leave Date"))

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeValidation, httpErr.Code)
		assert.Equal(t, "Leave Date is required", httpErr.Message)
		assert.Equal(t, map[string]string{"field": "Leave Date"}, httpErr.Details)
	})

	t.Run("wrapped cause is not exposed", func(t *testing.T) {
		err := apperror.Wrap(errors.New("pq: relation missing"), apperror.CodeInternalError, "Export failed", http.StatusInternalServerError)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, "Export failed", httpErr.Message)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.ErrInternal.Message, httpErr.Message)
	})
}

func TestAppError_WithDetails(t *testing.T) {
	sentinel := apperror.New(apperror.CodeConflict, "Leave request has already been processed", http.StatusConflict)

	withDetails := sentinel.WithDetails(map[string]any{"status": "APPROVED"})

	assert.Nil(t, sentinel.Details)
	assert.ErrorIs(t, withDetails, sentinel)
	assert.Equal(t, map[string]any{"status": "APPROVED"}, apperror.ToHTTP(withDetails).Details)
}
