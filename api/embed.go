// Package api carries the OpenAPI document of the board HTTP API.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPI []byte
