package rpcerr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

// ErrorResponse is the error part of an RPC reply. Status follows HTTP
// semantics so callers can forward it unchanged.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var InternalServerErr = ErrorResponse{
	Status:  http.StatusInternalServerError,
	Code:    "internalServerError",
	Message: "an unknown error occurred",
}

// New maps err to the error reply. Errors that are not client errors are
// reported as an opaque internal server error.
func New(err error) ErrorResponse {
	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = FieldError{
				Field:   fe.Field(),
				Message: validator.ValidationErrorMessage(fe),
			}
		}

		return ErrorResponse{
			Status:  http.StatusBadRequest,
			Code:    apperr.ValidationErrorCode,
			Message: apperr.ValidationErr.Msg(),
			Details: details,
		}
	}

	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Status:  ZErrorStatusToCode(zErr.Status()),
			Code:    zErr.Code(),
			Message: zErr.Msg(),
			Details: zErr.Details(),
		}
	}

	return InternalServerErr
}

// ZErrorStatusToCode maps a zerror status to its HTTP style status code.
func ZErrorStatusToCode(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest, zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
