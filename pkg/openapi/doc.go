// Package openapi describes the report payload produced by a template as an
// OpenAPI 3 schema. Consumers use it to publish the report contract and to
// check submitted values before they reach storage.
package openapi
