package apierr

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/rpc/rpcerr"
)

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var InternalServerErr = fromRPC(rpcerr.InternalServerErr)

// New maps err to the API error response. The mapping is the one the RPC
// boundary uses, plus request validation failures of the OpenAPI contract.
func New(err error) ErrorResponse {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return fromRPC(rpcerr.New(openAPIRequestErr(reqErr)))
	}

	return fromRPC(rpcerr.New(err))
}

func openAPIRequestErr(reqErr *openapi3filter.RequestError) error {
	if reqErr.Parameter != nil && reqErr.Parameter.In == "path" && reqErr.Parameter.Name == "id" {
		return apperr.InvalidIDErr.WrapParent(reqErr)
	}

	msg := reqErr.Error()
	switch {
	case reqErr.Parameter != nil:
		msg = "parameter \"" + reqErr.Parameter.Name + "\": " + reasonOf(reqErr)
	case reqErr.RequestBody != nil:
		msg = "request body: " + reasonOf(reqErr)
	}

	return apperr.ValidationErr.WithMsg(msg).WrapParent(reqErr)
}

func reasonOf(reqErr *openapi3filter.RequestError) string {
	if reqErr.Err != nil {
		return reqErr.Err.Error()
	}
	return reqErr.Reason
}

func fromRPC(res rpcerr.ErrorResponse) ErrorResponse {
	statusCode := res.Status
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	return ErrorResponse{
		Code:       res.Code,
		Message:    res.Message,
		Details:    res.Details,
		StatusCode: statusCode,
	}
}
