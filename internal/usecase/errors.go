package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"foodorder/internal/domain/model"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindPaymentRequired ErrorKind = "payment_required"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindDuplicate       ErrorKind = "duplicate"
	KindServer          ErrorKind = "server"
)

// handlerがそのままJSONにするエラー
// Fieldsはmessageと同じ階層に出す
type HTTPError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Fields  map[string]interface{}
	cause   error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.cause }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Kind:    kindForStatus(status),
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 400
func NewValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 404。他人のリソースもこれで隠す
func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// 403
func NewForbiddenError(message string) error {
	return NewHTTPError(http.StatusForbidden, message)
}

// 403 + payment_status
func NewPaymentRequiredError(current model.PaymentStatus) error {
	return &HTTPError{
		Status:  http.StatusForbidden,
		Kind:    KindPaymentRequired,
		Message: "Cannot update order status before online payment is completed",
		Fields:  map[string]interface{}{"payment_status": current},
	}
}

// 400 + current_status（決済済みの再処理など）
func NewConflictError(message string, current model.PaymentStatus) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Kind:    KindConflict,
		Message: message,
		Fields:  map[string]interface{}{"current_status": current},
	}
}

// 409
func NewDuplicateRequestError() error {
	return &HTTPError{
		Status:  http.StatusConflict,
		Kind:    KindDuplicate,
		Message: "Duplicate checkout request",
	}
}

// 500。causeはログにだけ出す
func NewServerError(cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Kind:    KindServer,
		Message: "Server error",
		cause:   cause,
	}
}

// Tx内で返したHTTPErrorはそのまま、それ以外は500に包む
func asUsecaseError(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return NewServerError(fmt.Errorf("%s: %w", op, err))
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindDuplicate
	}
	return KindServer
}
