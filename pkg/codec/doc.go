// Package codec reads and writes report templates as JSON or YAML documents.
//
// Decode accepts either encoding, trying JSON first. Import goes further: it
// strips markup from every human-readable string, renumbers section and field
// orders, enforces the structural contract via model.Check and attaches a
// validation.Result. LoadFS walks a filesystem of template documents and
// returns a Library keyed by path.
package codec
