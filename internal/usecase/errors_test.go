package usecase_test

import (
	"errors"
	"net/http"
	"testing"

	"foodorder/internal/domain/model"
	"foodorder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_ServerErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := usecase.NewServerError(cause)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "Server error", he.Message)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPError_Kinds(t *testing.T) {
	he, _ := usecase.AsHTTPError(usecase.NewValidationError("x"))
	assert.Equal(t, usecase.KindValidation, he.Kind)

	he, _ = usecase.AsHTTPError(usecase.NewNotFoundError("x"))
	assert.Equal(t, usecase.KindNotFound, he.Kind)

	he, _ = usecase.AsHTTPError(usecase.NewDuplicateRequestError())
	assert.Equal(t, http.StatusConflict, he.Status)

	he, _ = usecase.AsHTTPError(usecase.NewPaymentRequiredError(model.PaymentStatusFailed))
	assert.Equal(t, http.StatusForbidden, he.Status)
	assert.Equal(t, model.PaymentStatusFailed, he.Fields["payment_status"])
}
