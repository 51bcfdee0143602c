// Package apicontract embeds the OpenAPI contract of the REST gateway.
package apicontract

import _ "embed"

//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the embedded OpenAPI specification as a byte slice.
func GetSpecBytes() []byte {
	return specBytes
}
