package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
)

// ID is a product id as sent by clients. It accepts a JSON number or a
// numeric string; anything else is rejected as an invalid id.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return apperr.InvalidIDErr.WrapParent(err)
		}
		b = []byte(s)
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return apperr.InvalidIDErr.WrapParent(err)
	}

	*id = ID(n)
	return nil
}

// Int64s converts ids for the catalog engine.
func Int64s(ids []ID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
