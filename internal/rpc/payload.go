package rpc

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

type createProductPayload struct {
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0,maxdecimals=4"`
}

type findAllProductsPayload struct {
	Page  *int `json:"page" validate:"omitnil,min=1"`
	Limit *int `json:"limit" validate:"omitnil,min=1"`
}

type productIDPayload struct {
	ID model.ID `json:"id" validate:"gt=0"`
}

// updateProductPayload carries the target id next to the patch. The id is
// never part of the patch handed to the catalog.
type updateProductPayload struct {
	ID    model.ID `json:"id" validate:"gt=0"`
	Name  *string  `json:"name" validate:"omitnil,min=1"`
	Price *float64 `json:"price" validate:"omitnil,gte=0,maxdecimals=4"`
}

// decode strictly unmarshals a JSON payload: unknown fields and trailing data
// are rejected. An empty payload decodes to the zero value when allowEmpty is set.
func decode[T any](payload []byte, allowEmpty bool) (T, error) {
	var v T

	trimmed := bytes.TrimSpace(payload)
	if allowEmpty && (len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))) {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var zErr zerror.ZError
		if errors.As(err, &zErr) {
			return v, zErr
		}
		return v, apperr.InvalidPayloadErr.WithMsg(err.Error()).WrapParent(err)
	}
	if dec.More() {
		return v, apperr.InvalidPayloadErr.WithMsg("unexpected data after payload")
	}

	return v, nil
}
