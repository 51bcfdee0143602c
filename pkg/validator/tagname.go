package validator

import (
	"reflect"
	"strings"
)

// jsonFieldName reports fields by their json name so error details match the payload keys.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
