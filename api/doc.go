// File: api/doc.go
// License: Apache-2.0

// Package api defines the public contracts of hostloop: the pollable
// future abstraction, the services an embedding host must provide, and
// the shared error types used across the library.
package api
